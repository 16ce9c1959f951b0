package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationService reacts to asset events delivered by the broker.
type NotificationService struct {
	DB     AssetStore
	Mailer Mailer
}

// HandleAssetEvent emails the new holders of an assigned asset and records
// the delivery in the asset history. Other event types are only logged.
// A failed email is logged and skipped; an error is returned only when
// nobody could be emailed, so a redelivery never repeats a sent email.
func (n *NotificationService) HandleAssetEvent(ctx context.Context, event events.AssetEvent) error {
	logger := log.With().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.Type)).
		Str("asset_id", event.AssetID.String()).
		Logger()

	if event.Type != events.AssetAssigned {
		logger.Debug().Msg("No notification for event type")
		return nil
	}

	recipients, err := n.recipients(ctx, event)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Info().Msg("Assigned asset has no one to notify")
		return nil
	}

	subject := fmt.Sprintf("Asset %s has been assigned to you", event.Sticker)
	var sent, failed []string
	var lastErr error
	for _, u := range recipients {
		body := fmt.Sprintf("Hello %s,\n\nAsset %s has been assigned to you", u.FirstName, event.Sticker)
		if event.ProjectID != nil {
			body += " through one of your projects"
		}
		body += ".\n"

		if n.Mailer == nil {
			logger.Warn().Str("user_id", u.ID.String()).Msg("Mailer not configured, skipping email")
			continue
		}
		if err := n.Mailer.Send(ctx, u.Email, subject, body); err != nil {
			logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("Failed to email assignment notification")
			failed = append(failed, u.Email)
			lastErr = fmt.Errorf("error emailing %s: %w", u.ID, err)
			continue
		}
		sent = append(sent, u.Email)
	}

	if len(sent) == 0 {
		return lastErr
	}

	details := "emailed " + strings.Join(sent, ", ")
	if len(failed) > 0 {
		details += "; failed " + strings.Join(failed, ", ")
	}

	logger.Info().Int("recipients", len(sent)).Int("failed", len(failed)).Msg("Assignment notification sent")
	actor := event.ActorID
	return n.DB.AppendHistory(ctx, models.AssetHistory{
		AssetID: event.AssetID,
		Action:  "notified",
		ActorID: &actor,
		Details: details,
	})
}

func (n *NotificationService) recipients(ctx context.Context, event events.AssetEvent) ([]models.User, error) {
	var ids []uuid.UUID
	switch {
	case event.UserID != nil:
		ids = []uuid.UUID{*event.UserID}
	case event.ProjectID != nil:
		p, err := n.DB.GetProject(ctx, *event.ProjectID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, nil
		}
		ids = p.Members
	}

	var users []models.User
	for _, id := range ids {
		u, err := n.DB.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			users = append(users, *u)
		}
	}
	return users, nil
}
