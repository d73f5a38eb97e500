package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/marketvibe/doorrenew-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, first_name, phone, email, door_issue, location, lead_type, source,
	utm_source, utm_medium, utm_campaign, campaign_name, ad_name, form_id, form_name,
	user_agent, ip_address, image_urls, comments, created_at, second_step_at
`

// Create assigns the id and created_at and inserts the row. image_urls and
// comments always start empty; only Update writes them.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	lead.ID = uuid.New().String()
	lead.CreatedAt = time.Now().UTC()
	if lead.ImageURLs == nil {
		lead.ImageURLs = []string{}
	}

	query := `
		INSERT INTO leads (
			id, first_name, phone, email, door_issue, location, lead_type, source,
			utm_source, utm_medium, utm_campaign, campaign_name, ad_name, form_id, form_name,
			user_agent, ip_address, image_urls, comments, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NULL, $19)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.Phone,
		nullString(lead.Email),
		nullString(lead.DoorIssue),
		nullString(lead.Location),
		nullString(lead.LeadType),
		nullString(lead.Source),
		nullString(lead.UTMSource),
		nullString(lead.UTMMedium),
		nullString(lead.UTMCampaign),
		nullString(lead.CampaignName),
		nullString(lead.AdName),
		nullString(lead.FormID),
		nullString(lead.FormName),
		nullString(lead.UserAgent),
		nullString(lead.IPAddress),
		pq.Array(lead.ImageURLs),
		lead.CreatedAt,
	)

	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, id))
}

// FindLatestByEmail is the legacy fallback match for the second form step:
// the most recently created lead with that email.
func (r *LeadRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanLead(r.DB.QueryRowContext(ctx, query, email))
}

// Update merges the second-step fields and stamps second_step_at.
func (r *LeadRepository) Update(ctx context.Context, id string, update entity.LeadUpdate) (*entity.Lead, error) {
	if update.ImageURLs == nil {
		update.ImageURLs = []string{}
	}

	query := `
		UPDATE leads SET
			image_urls = $2,
			comments = $3,
			door_issue = COALESCE(NULLIF($4, ''), door_issue),
			email = COALESCE(NULLIF($5, ''), email),
			second_step_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	return r.scanLead(r.DB.QueryRowContext(ctx, query,
		id,
		pq.Array(update.ImageURLs),
		nullString(update.Comments),
		update.DoorIssue,
		update.Email,
	))
}

func (r *LeadRepository) scanLead(row *sql.Row) (*entity.Lead, error) {
	var lead entity.Lead
	var email, doorIssue, location, leadType, source sql.NullString
	var utmSource, utmMedium, utmCampaign, campaignName, adName, formID, formName sql.NullString
	var userAgent, ipAddress, comments sql.NullString
	var secondStepAt sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.Phone,
		&email,
		&doorIssue,
		&location,
		&leadType,
		&source,
		&utmSource,
		&utmMedium,
		&utmCampaign,
		&campaignName,
		&adName,
		&formID,
		&formName,
		&userAgent,
		&ipAddress,
		pq.Array(&lead.ImageURLs),
		&comments,
		&lead.CreatedAt,
		&secondStepAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	lead.Email = email.String
	lead.DoorIssue = doorIssue.String
	lead.Location = location.String
	lead.LeadType = leadType.String
	lead.Source = source.String
	lead.UTMSource = utmSource.String
	lead.UTMMedium = utmMedium.String
	lead.UTMCampaign = utmCampaign.String
	lead.CampaignName = campaignName.String
	lead.AdName = adName.String
	lead.FormID = formID.String
	lead.FormName = formName.String
	lead.UserAgent = userAgent.String
	lead.IPAddress = ipAddress.String
	lead.Comments = comments.String
	if secondStepAt.Valid {
		t := secondStepAt.Time
		lead.SecondStepAt = &t
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
