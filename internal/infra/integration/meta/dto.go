package meta

// Event is one server-side conversion event in the Graph API shape. The
// client fills action_source, event_time, event_id and the LDU data
// processing options when the caller leaves them empty.
type Event struct {
	EventName      string         `json:"event_name"`
	EventTime      int64          `json:"event_time"`
	EventSourceURL string         `json:"event_source_url,omitempty"`
	ActionSource   string         `json:"action_source"`
	EventID        string         `json:"event_id,omitempty"`
	UserData       UserData       `json:"user_data"`
	CustomData     map[string]any `json:"custom_data,omitempty"`

	DataProcessingOptions        []string `json:"data_processing_options,omitempty"`
	DataProcessingOptionsCountry int      `json:"data_processing_options_country,omitempty"`
	DataProcessingOptionsState   int      `json:"data_processing_options_state,omitempty"`
}

// UserData carries the match keys. Em and Ph must arrive raw; the client
// hashes them before the payload leaves the process. Fbp and Fbc are opaque
// browser correlation tokens and are sent as-is.
type UserData struct {
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
	Em              []string `json:"em,omitempty"`
	Ph              []string `json:"ph,omitempty"`
	Fbp             string   `json:"fbp,omitempty"`
	Fbc             string   `json:"fbc,omitempty"`
}

type eventsRequest struct {
	Data          []Event `json:"data"`
	AccessToken   string  `json:"access_token"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

// EventResponse is the Graph API acknowledgement.
type EventResponse struct {
	EventsReceived int    `json:"events_received"`
	FBTraceID      string `json:"fbtrace_id"`
}
