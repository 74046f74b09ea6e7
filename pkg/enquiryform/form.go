// Package enquiryform is a client for the enquiry submission endpoint. It
// mirrors the website form: an in-memory record mutated field by field, an
// optional PDF/DOCX attachment, and a single multipart POST with a
// one-submission-in-flight guard.
package enquiryform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/voltdrive/enquiry-api/internal/models"
	"github.com/voltdrive/enquiry-api/pkg/httpclient"
)

// State of the form controller. Submit is only reachable from StateIdle;
// both outcomes of a submission return the form to StateIdle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	// ErrSubmissionInFlight rejects a Submit while one is outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrUnsupportedFileType rejects attachments other than PDF or DOCX.
	ErrUnsupportedFileType = errors.New("only DOCX and PDF files are allowed")

	// ErrUnknownField rejects a field name the record does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrSubmitFailed normalizes transport errors and non-2xx responses.
	ErrSubmitFailed = errors.New("failed to submit enquiry")
)

var validate = validator.New()

// Attachment is the file staged for upload alongside the record.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Form holds the enquiry being composed. Safe for concurrent use, though the
// intended caller is a single UI event loop.
type Form struct {
	mu         sync.Mutex
	state      State
	record     models.EnquiryRecord
	attachment *Attachment

	endpoint string
	client   httpclient.Client
}

// New creates a form targeting the given submission endpoint.
func New(endpoint string, client httpclient.Client) *Form {
	return &Form{
		state:    StateIdle,
		record:   defaultRecord(),
		endpoint: endpoint,
		client:   client,
	}
}

func defaultRecord() models.EnquiryRecord {
	return models.EnquiryRecord{
		OfferRequirement: models.OfferEstimated,
		Replacement:      models.ReplacementNo,
		ExistingMotor:    &models.ExistingMotorRecord{},
	}
}

// State returns the current controller state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Record returns a copy of the current field values.
func (f *Form) Record() models.EnquiryRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := f.record
	if f.record.ExistingMotor != nil {
		em := *f.record.ExistingMotor
		record.ExistingMotor = &em
	}
	return record
}

// SetField updates one top-level scalar field by its wire name. Values are
// stored as-is; numeric fields carry whatever text the widget allowed.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case "motorType":
		f.record.MotorType = value
	case "application":
		f.record.Application = value
	case "dutyDescription":
		f.record.DutyDescription = value
	case "kw":
		f.record.KW = value
	case "hp":
		f.record.HP = value
	case "armatureVoltage":
		f.record.ArmatureVoltage = value
	case "fieldVoltage":
		f.record.FieldVoltage = value
	case "baseRpm":
		f.record.BaseRPM = value
	case "speedVariation":
		f.record.SpeedVariation = value
	case "overloadClass":
		f.record.OverloadClass = value
	case "delivery":
		f.record.Delivery = value
	case "deliveryDutyDescription":
		f.record.DeliveryDutyDescription = value
	case "offerRequirement":
		f.record.OfferRequirement = value
	case "description":
		f.record.Description = value
	case "replacement":
		f.record.Replacement = value
	case "otherSpecs":
		f.record.OtherSpecs = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SetExistingMotorField updates one field of the nested existing-motor record.
func (f *Form) SetExistingMotorField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.record.ExistingMotor == nil {
		f.record.ExistingMotor = &models.ExistingMotorRecord{}
	}
	em := f.record.ExistingMotor

	switch name {
	case "make":
		em.Make = value
	case "kw":
		em.KW = value
	case "hp":
		em.HP = value
	case "rpm":
		em.RPM = value
	case "mounting":
		em.Mounting = value
	case "pole":
		em.Pole = value
	case "application":
		em.Application = value
	default:
		return fmt.Errorf("%w: existingMotor.%s", ErrUnknownField, name)
	}
	return nil
}

// AttachFile stages a file for upload. Only a declared PDF media type or a
// .docx filename suffix is accepted; anything else is rejected without
// touching the staged attachment. A new call replaces the previous file.
func (f *Form) AttachFile(filename, contentType string, content []byte) error {
	if contentType != "application/pdf" && !strings.HasSuffix(filename, ".docx") {
		return ErrUnsupportedFileType
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachment = &Attachment{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	}
	return nil
}

// ClearAttachment removes the staged file.
func (f *Form) ClearAttachment() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachment = nil
}

// Attachment returns the staged file, or nil.
func (f *Form) Attachment() *Attachment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attachment
}

// Submit serializes the record, packages it with the staged attachment into
// one multipart request, and posts it. On a 2xx response the form resets to
// defaults; on any other outcome field values are preserved so the user can
// retry without re-entering data. Exactly one submission may be in flight.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := validate.Struct(&f.record); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	f.state = StateSubmitting
	record := f.record
	attachment := f.attachment
	f.mu.Unlock()

	body, contentType, err := packageSubmission(&record, attachment)

	var resp *http.Response
	if err == nil {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, body)
		if err == nil {
			req.Header.Set("Content-Type", contentType)
			resp, err = f.client.Do(req)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle

	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	// The endpoint always answers with a JSON message body; anything else is
	// treated the same as a transport failure.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	var result models.EnquiryResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("%w: malformed response body", ErrSubmitFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s (status %d)", ErrSubmitFailed, result.Message, resp.StatusCode)
	}

	// Confirmed success: reset to defaults and drop the attachment.
	f.record = defaultRecord()
	f.attachment = nil
	return nil
}

// packageSubmission builds the multipart body: a formData text part with the
// JSON-encoded record and, when staged, a file part with the original
// filename and declared media type.
func packageSubmission(record *models.EnquiryRecord, attachment *Attachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("formData", string(encoded)); err != nil {
		return nil, "", err
	}

	if attachment != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, attachment.Filename))
		if attachment.ContentType != "" {
			header.Set("Content-Type", attachment.ContentType)
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(attachment.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
