package workflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/logger"
	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished. The view disables the submit control on this
// flag, but the workflow guards it too.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Uploader pushes an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// ReportCreator creates a report record for an owner.
type ReportCreator interface {
	CreateReport(ctx context.Context, ownerID string, in model.CreateReportInput) (string, error)
}

// Session resolves the acting user at write time.
type Session interface {
	CurrentUserID() string
}

// StagedImage is an image the user captured or selected for the pending
// report.
type StagedImage struct {
	Name string
	Data []byte
}

// SubmitWorkflow drives one report form instance: validate locally, upload
// the staged image if any, then create the record. At most one submission is
// in flight at a time.
type SubmitWorkflow struct {
	session Session
	reports ReportCreator
	uploads Uploader

	mu         sync.Mutex
	inFlight   bool
	staged     *StagedImage
	successMsg string
	errorMsg   string
}

func NewSubmitWorkflow(session Session, reports ReportCreator, uploads Uploader) *SubmitWorkflow {
	return &SubmitWorkflow{
		session: session,
		reports: reports,
		uploads: uploads,
	}
}

// StageImage stores the captured/selected image for the next submission,
// replacing any previous one.
func (w *SubmitWorkflow) StageImage(name string, data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.staged = &StagedImage{Name: name, Data: data}
}

// RemoveImage discards the staged image. This is the only path that clears it
// besides a successful submission.
func (w *SubmitWorkflow) RemoveImage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.staged = nil
}

// StagedImage returns the currently staged image, or nil.
func (w *SubmitWorkflow) StagedImage() *StagedImage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.staged
}

// IsSubmitting reports whether a submission is in flight.
func (w *SubmitWorkflow) IsSubmitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// SuccessMessage returns the message of the last successful submission, or "".
func (w *SubmitWorkflow) SuccessMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.successMsg
}

// ErrorMessage returns the displayable message of the last failure, or "".
func (w *SubmitWorkflow) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errorMsg
}

// Submit runs the full pipeline and returns the new report's id. Validation
// failures happen before any network call. If the image uploads but record
// creation fails, the uploaded image is orphaned on the host; no compensating
// delete is attempted. The staged image survives failures and is cleared only
// on success or by RemoveImage.
func (w *SubmitWorkflow) Submit(ctx context.Context, in model.CreateReportInput) (string, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	w.inFlight = true
	w.successMsg = ""
	w.errorMsg = ""
	staged := w.staged
	w.mu.Unlock()

	id, err := w.submit(ctx, in, staged)

	w.mu.Lock()
	w.inFlight = false
	if err != nil {
		w.errorMsg = displayMessage(err)
	} else {
		w.successMsg = "Report submitted successfully!"
		w.staged = nil
	}
	w.mu.Unlock()

	return id, err
}

func (w *SubmitWorkflow) submit(ctx context.Context, in model.CreateReportInput, staged *StagedImage) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	ownerID := w.session.CurrentUserID()
	if ownerID == "" {
		return "", apperrors.ErrNotAuthenticated
	}

	if staged != nil {
		url, err := w.uploads.Upload(ctx, bytes.NewReader(staged.Data), staged.Name)
		if err != nil {
			return "", err
		}
		in.ImageURL = &url
	}

	id, err := w.reports.CreateReport(ctx, ownerID, in)
	if err != nil {
		if in.ImageURL != nil {
			// accepted limitation: the uploaded image stays orphaned
			logger.Warning("Report creation failed after image upload; %s is orphaned", *in.ImageURL)
		}
		return "", err
	}

	logger.Success("Report %s submitted", id)
	return id, nil
}

// displayMessage converts any pipeline error into the message the view
// shows. Errors never propagate to the view layer uncaught.
func displayMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return "You must be logged in to submit a report"
	default:
		return err.Error()
	}
}
