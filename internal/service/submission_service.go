package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/despachos/equipcheck/internal/checklist"
	"github.com/despachos/equipcheck/internal/models"
	"github.com/despachos/equipcheck/internal/repository"
	"github.com/despachos/equipcheck/internal/signature"
)

var (
	ErrUnknownEquipment   = errors.New("unknown equipment")
	ErrBadCondition       = errors.New("invalid status value")
	ErrBadDate            = errors.New("date must be YYYY-MM-DD")
	ErrItemsMismatch      = errors.New("every checklist item needs exactly one answer")
	ErrPhotoRequired      = errors.New("items reported as FAULT require an evidence photo")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type SubmissionService struct {
	subs      *repository.SubmissionRepo
	photos    *repository.PhotoRepo
	approvals *repository.ApprovalRepo
	defs      *checklist.Definitions
}

func NewSubmissionService(subs *repository.SubmissionRepo, photos *repository.PhotoRepo, approvals *repository.ApprovalRepo, defs *checklist.Definitions) *SubmissionService {
	return &SubmissionService{subs: subs, photos: photos, approvals: approvals, defs: defs}
}

// ItemAnswer is the operator's answer for one defined checklist item.
type ItemAnswer struct {
	ItemID  string `json:"itemId"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// PhotoUpload is an evidence photo extracted from the multipart request,
// keyed to a checklist item.
type PhotoUpload struct {
	ItemID      string
	Filename    string
	ContentType string
	Content     []byte
}

type CreateSubmissionInput struct {
	Equipment    string       `json:"equipment"`
	Date         string       `json:"date"`
	Shift        string       `json:"shift"`
	GlobalStatus string       `json:"globalStatus"`
	Note         string       `json:"note"`
	Signature    string       `json:"signature"` // base64 PNG/JPEG
	Items        []ItemAnswer `json:"items"`
	Photos       []PhotoUpload
}

// Create validates and stores a checklist submission. The stored item
// text and section come from the server-side definitions, not from the
// client; the client only answers per item id.
func (s *SubmissionService) Create(ctx context.Context, operator, operatorName string, in CreateSubmissionInput) (*models.Submission, error) {
	defItems := s.defs.ItemsFor(in.Equipment)
	if defItems == nil {
		return nil, ErrUnknownEquipment
	}
	if !models.ValidCondition(in.GlobalStatus) {
		return nil, fmt.Errorf("%w: global status %q", ErrBadCondition, in.GlobalStatus)
	}

	answers := make(map[string]ItemAnswer, len(in.Items))
	for _, a := range in.Items {
		if !models.ValidCondition(a.Status) {
			return nil, fmt.Errorf("%w: item %s status %q", ErrBadCondition, a.ItemID, a.Status)
		}
		answers[a.ItemID] = a
	}
	if len(answers) != len(defItems) {
		return nil, ErrItemsMismatch
	}

	photosByItem := make(map[string][]PhotoUpload)
	for _, p := range in.Photos {
		photosByItem[p.ItemID] = append(photosByItem[p.ItemID], p)
	}

	sigBytes, err := signature.Decode(in.Signature)
	if err != nil {
		return nil, fmt.Errorf("operator signature: %w", err)
	}

	// The date column is compared as an ISO string by the weekly export,
	// so anything else would silently fall out of every range.
	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: got %q", ErrBadDate, in.Date)
	}

	id := newSubmissionID()
	now := time.Now().UTC()

	items := make([]models.SubmissionItem, 0, len(defItems))
	photos := make([]models.Photo, 0, len(in.Photos))
	for idx, def := range defItems {
		a, ok := answers[def.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing answer for item %s", ErrItemsMismatch, def.ID)
		}
		if a.Status == models.ConditionFault && len(photosByItem[def.ID]) == 0 {
			return nil, fmt.Errorf("%w: item %s", ErrPhotoRequired, def.ID)
		}
		items = append(items, models.SubmissionItem{
			SubmissionID: id,
			ItemIndex:    idx + 1,
			Section:      def.Section,
			Item:         def.Text,
			Status:       a.Status,
			Comment:      a.Comment,
		})
		for _, p := range photosByItem[def.ID] {
			photos = append(photos, models.Photo{
				ID:           uuid.New(),
				SubmissionID: id,
				ItemIndex:    idx + 1,
				Filename:     p.Filename,
				ContentType:  p.ContentType,
				Content:      p.Content,
				CreatedAt:    now,
			})
		}
	}

	sub := &models.Submission{
		ID:                id,
		Date:              date,
		Shift:             in.Shift,
		Equipment:         in.Equipment,
		OperatorUsername:  operator,
		OperatorName:      operatorName,
		GlobalStatus:      in.GlobalStatus,
		Note:              in.Note,
		OperatorSignature: sigBytes,
		Status:            models.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.subs.CreateWithItems(ctx, sub, items); err != nil {
		return nil, err
	}
	if err := s.photos.ReplaceForSubmission(ctx, id, photos); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubmissionService) ListMine(ctx context.Context, operator string) ([]models.Submission, error) {
	return s.subs.Find(ctx, repository.SubmissionFilter{Operator: operator})
}

func (s *SubmissionService) ListPending(ctx context.Context) ([]models.Submission, error) {
	return s.subs.Find(ctx, repository.SubmissionFilter{Status: models.StatusPending})
}

func (s *SubmissionService) ListAll(ctx context.Context, status, equipment string) ([]models.Submission, error) {
	return s.subs.Find(ctx, repository.SubmissionFilter{Status: status, Equipment: equipment})
}

type SubmissionDetail struct {
	Submission *models.Submission      `json:"submission"`
	Items      []models.SubmissionItem `json:"items"`
	Photos     []models.Photo          `json:"photos"`
	Approval   *models.Approval        `json:"approval,omitempty"`
}

func (s *SubmissionService) Detail(ctx context.Context, id string) (*SubmissionDetail, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	items, err := s.subs.ItemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.FindBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	appr, err := s.approvals.FindBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SubmissionDetail{Submission: sub, Items: items, Photos: photos, Approval: appr}, nil
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newSubmissionID builds a short human-readable id: S + timestamp + 4
// random characters, e.g. S20260826143502KQ7X.
func newSubmissionID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	for i := range suffix {
		suffix[i] = idAlphabet[int(suffix[i])%len(idAlphabet)]
	}
	return fmt.Sprintf("S%s%s", time.Now().Format("20060102150405"), suffix)
}
