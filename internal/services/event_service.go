package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gcore-rewards-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ItemSkipped = "SKIPPED"

type EventView struct {
	models.Event
	ParticipantCount int64                      `json:"participantCount"`
	UserStatus       models.ParticipationStatus `json:"userStatus"`
}

type EventInput struct {
	Title        string
	Description  string
	Date         time.Time
	Location     string
	Points       int64
	ActivityType models.ActivityType
	TotalSlots   int64
}

type ParticipantResult struct {
	ParticipationID string `json:"participationId"`
	UserID          string `json:"userId"`
	WalletAddress   string `json:"walletAddress"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
	TxHash          string `json:"txHash,omitempty"`
}

type ApprovalResult struct {
	SuccessCount int                 `json:"successCount"`
	FailureCount int                 `json:"failureCount"`
	SkippedCount int                 `json:"skippedCount"`
	Results      []ParticipantResult `json:"results"`
}

type EventService struct {
	db           *gorm.DB
	distribution *DistributionService
	log          *zap.Logger
}

func NewEventService(db *gorm.DB, distribution *DistributionService, log *zap.Logger) *EventService {
	return &EventService{db: db, distribution: distribution, log: log}
}

// List returns active events, newest first, with the caller's participation status.
func (s *EventService) List(ctx context.Context, userID string) ([]EventView, error) {
	db := s.db.WithContext(ctx)

	var events []models.Event
	if err := db.Where("is_active = ?", true).Order("date desc").Find(&events).Error; err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []EventView{}, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	var counts []struct {
		EventID string
		Total   int64
	}
	if err := db.Model(&models.EventParticipation{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	countByEvent := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByEvent[c.EventID] = c.Total
	}

	var mine []models.EventParticipation
	if err := db.Where("user_id = ? AND event_id IN ?", userID, ids).Find(&mine).Error; err != nil {
		return nil, err
	}
	statusByEvent := make(map[string]models.ParticipationStatus, len(mine))
	for _, p := range mine {
		statusByEvent[p.EventID] = p.Status
	}

	views := make([]EventView, 0, len(events))
	for _, e := range events {
		status, ok := statusByEvent[e.ID]
		if !ok {
			status = models.ParticipationNone
		}
		views = append(views, EventView{
			Event:            e,
			ParticipantCount: countByEvent[e.ID],
			UserStatus:       status,
		})
	}
	return views, nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.Points < 0 || in.TotalSlots < 0 {
		return nil, ErrInvalidAmount
	}
	if in.ActivityType == "" {
		in.ActivityType = models.ActivityEventAttendance
	}
	if !in.ActivityType.Valid() {
		return nil, ErrInvalidActivityType
	}

	event := &models.Event{
		Title:        in.Title,
		Description:  in.Description,
		Date:         in.Date,
		Location:     in.Location,
		Points:       in.Points,
		ActivityType: in.ActivityType,
		TotalSlots:   in.TotalSlots,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Join registers an approved user for an event and notifies the user and
// every admin.
func (s *EventService) Join(ctx context.Context, userID, eventID string) (*models.EventParticipation, error) {
	var participation models.EventParticipation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if !event.IsActive {
			return ErrEventInactive
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Status != models.UserStatusApproved {
			return ErrUserNotApproved
		}

		if event.TotalSlots > 0 {
			var count int64
			if err := tx.Model(&models.EventParticipation{}).Where("event_id = ?", event.ID).Count(&count).Error; err != nil {
				return err
			}
			if count >= event.TotalSlots {
				return ErrEventFull
			}
		}

		participation = models.EventParticipation{
			UserID:  user.ID,
			EventID: event.ID,
			Status:  models.ParticipationPending,
		}
		if err := tx.Create(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyJoined
			}
			return err
		}

		if err := notify(tx, user.ID, models.NotificationSuccess, "Event Registration",
			fmt.Sprintf("You've registered for %s. Stay tuned for updates!", event.Title), "/events"); err != nil {
			return err
		}

		var admins []models.User
		if err := tx.Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).Find(&admins).Error; err != nil {
			return err
		}
		displayName := user.Name
		if displayName == "" {
			displayName = user.WalletAddress
		}
		for _, admin := range admins {
			if err := notify(tx, admin.ID, models.NotificationInfo, "New Event Registration",
				fmt.Sprintf("%s has registered for %s.", displayName, event.Title),
				fmt.Sprintf("/admin/events/%s/participants", event.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

func (s *EventService) Participants(ctx context.Context, eventID string) ([]models.EventParticipation, error) {
	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Event{}, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var participations []models.EventParticipation
	err := db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&participations).Error
	return participations, err
}

// ApproveParticipants approves participations and credits the event's
// points to each one. An empty id list approves every pending participant.
// A participation is credited at most once: it is claimed with a
// conditional update before minting and released if the mint fails.
func (s *EventService) ApproveParticipants(ctx context.Context, eventID string, participationIDs []string) (*ApprovalResult, error) {
	db := s.db.WithContext(ctx)

	var event models.Event
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	query := db.Preload("User").Where("event_id = ?", eventID)
	if len(participationIDs) > 0 {
		query = query.Where("id IN ?", participationIDs)
	} else {
		query = query.Where("status = ?", models.ParticipationPending)
	}
	var participations []models.EventParticipation
	if err := query.Order("created_at asc").Find(&participations).Error; err != nil {
		return nil, err
	}

	out := &ApprovalResult{Results: make([]ParticipantResult, 0, len(participations))}
	for _, p := range participations {
		res := ParticipantResult{ParticipationID: p.ID, UserID: p.UserID}
		if p.User != nil {
			res.WalletAddress = p.User.WalletAddress
		}

		claim := db.Model(&models.EventParticipation{}).
			Where("id = ? AND status = ? AND distributed_at IS NULL", p.ID, models.ParticipationPending).
			Update("status", models.ParticipationApproved)
		if claim.Error != nil {
			return nil, claim.Error
		}
		if claim.RowsAffected == 0 {
			res.Status = ItemSkipped
			out.SkippedCount++
			out.Results = append(out.Results, res)
			continue
		}

		if event.Points == 0 {
			res.Status = ItemSuccess
			out.SuccessCount++
			out.Results = append(out.Results, res)
			continue
		}

		dist, err := s.distribution.Distribute(ctx, DistributeInput{
			WalletAddress: res.WalletAddress,
			Amount:        event.Points,
			ActivityType:  event.ActivityType,
			Description:   fmt.Sprintf("Participation in %s", event.Title),
			Metadata: map[string]interface{}{
				"eventId":         event.ID,
				"participationId": p.ID,
			},
		})
		if err != nil {
			var lag *LedgerLagError
			if errors.As(err, &lag) {
				// Minted already: keep the claim so a retry cannot pay twice.
				s.markDistributed(db, p.ID, lag.TxHash)
				res.TxHash = lag.TxHash
			} else if rerr := db.Model(&models.EventParticipation{}).Where("id = ?", p.ID).
				Update("status", models.ParticipationPending).Error; rerr != nil {
				s.log.Error("failed to release participation claim",
					zap.String("participation_id", p.ID), zap.Error(rerr))
			}
			res.Status = ItemFailed
			res.Error = err.Error()
			out.FailureCount++
			out.Results = append(out.Results, res)
			continue
		}

		s.markDistributed(db, p.ID, dist.TxHash)

		res.Status = ItemSuccess
		res.TxHash = dist.TxHash
		out.SuccessCount++
		out.Results = append(out.Results, res)
	}

	s.log.Info("event participants approved",
		zap.String("event_id", event.ID),
		zap.Int("success", out.SuccessCount),
		zap.Int("failed", out.FailureCount),
		zap.Int("skipped", out.SkippedCount))

	return out, nil
}

func (s *EventService) markDistributed(db *gorm.DB, participationID, txHash string) {
	if err := db.Model(&models.EventParticipation{}).Where("id = ?", participationID).Updates(map[string]interface{}{
		"distributed_at": time.Now(),
		"tx_hash":        txHash,
	}).Error; err != nil {
		s.log.Error("failed to record participation distribution",
			zap.String("participation_id", participationID),
			zap.String("tx_hash", txHash),
			zap.Error(err))
	}
}
