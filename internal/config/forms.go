package config

// FormConfig maps a Facebook lead-form to the market and product it was
// created for. New ad forms must be registered here or webhook deliveries
// land without a location and trigger the unknown-form warning email.
type FormConfig struct {
	Location string
	LeadType string // door, cabinet
}

var formConfigs = map[string]FormConfig{
	// Orlando forms
	"1248830573015854": {Location: "orlando", LeadType: "door"},
	"3844541842467999": {Location: "orlando", LeadType: "cabinet"},

	// Providence forms
	"946695224044577":  {Location: "providence", LeadType: "cabinet"},
	"3059467917542329": {Location: "providence", LeadType: "door"},

	// Detroit forms
	"1169932074781994": {Location: "detroit", LeadType: "door"},
	"1130506105240869": {Location: "detroit", LeadType: "cabinet"},
}

// FormConfigByID resolves a provider form id. ok is false for unregistered
// forms; the lead is still persisted, just untagged.
func FormConfigByID(formID string) (FormConfig, bool) {
	cfg, ok := formConfigs[formID]
	return cfg, ok
}
