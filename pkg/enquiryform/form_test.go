package enquiryform_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltdrive/enquiry-api/internal/models"
	"github.com/voltdrive/enquiry-api/pkg/enquiryform"
	"github.com/voltdrive/enquiry-api/pkg/httpclient"
)

type capturedSubmission struct {
	record       models.EnquiryRecord
	filename     string
	fileType     string
	fileContent  []byte
	hasFile      bool
	formDataSent bool
}

// submissionServer answers like the enquiry endpoint and records what it got.
func submissionServer(t *testing.T, status int, body string, captured *capturedSubmission) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(16<<20))

		if raw := r.FormValue("formData"); raw != "" {
			captured.formDataSent = true
			require.NoError(t, json.Unmarshal([]byte(raw), &captured.record))
		}

		if file, header, err := r.FormFile("file"); err == nil {
			captured.hasFile = true
			captured.filename = header.Filename
			captured.fileType = header.Header.Get("Content-Type")
			captured.fileContent, _ = io.ReadAll(file)
			file.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
}

func TestForm_Defaults(t *testing.T) {
	form := enquiryform.New("http://localhost/api/v1/enquiry", httpclient.NewStandardClient())

	record := form.Record()
	assert.Equal(t, models.OfferEstimated, record.OfferRequirement)
	assert.Equal(t, models.ReplacementNo, record.Replacement)
	require.NotNil(t, record.ExistingMotor)
	assert.Equal(t, models.ExistingMotorRecord{}, *record.ExistingMotor)
	assert.Equal(t, enquiryform.StateIdle, form.State())
	assert.Nil(t, form.Attachment())
}

func TestForm_SetField(t *testing.T) {
	form := enquiryform.New("http://localhost", httpclient.NewStandardClient())

	require.NoError(t, form.SetField("motorType", models.MotorTypeSolidYoke))
	require.NoError(t, form.SetField("kw", "15"))
	require.NoError(t, form.SetField("baseRpm", "1500"))
	require.NoError(t, form.SetExistingMotorField("make", "BHEL"))

	record := form.Record()
	assert.Equal(t, models.MotorTypeSolidYoke, record.MotorType)
	assert.Equal(t, "15", record.KW)
	assert.Equal(t, "1500", record.BaseRPM)
	assert.Equal(t, "BHEL", record.ExistingMotor.Make)

	err := form.SetField("nonsense", "x")
	assert.ErrorIs(t, err, enquiryform.ErrUnknownField)

	err = form.SetExistingMotorField("nonsense", "x")
	assert.ErrorIs(t, err, enquiryform.ErrUnknownField)
}

func TestForm_RecordIsACopy(t *testing.T) {
	form := enquiryform.New("http://localhost", httpclient.NewStandardClient())

	record := form.Record()
	record.MotorType = models.MotorTypeLaminatedYoke
	record.ExistingMotor.Make = "mutated"

	fresh := form.Record()
	assert.Empty(t, fresh.MotorType)
	assert.Empty(t, fresh.ExistingMotor.Make)
}

func TestForm_AttachFile(t *testing.T) {
	form := enquiryform.New("http://localhost", httpclient.NewStandardClient())

	tests := []struct {
		name        string
		filename    string
		contentType string
		wantErr     bool
	}{
		{"pdf by media type", "specs.pdf", "application/pdf", false},
		{"docx by suffix", "specs.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"docx with empty type", "specs.docx", "", false},
		{"plain text rejected", "notes.txt", "text/plain", true},
		{"pdf suffix without pdf type rejected", "specs.pdf", "image/png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form.ClearAttachment()
			err := form.AttachFile(tt.filename, tt.contentType, []byte("content"))
			if tt.wantErr {
				assert.ErrorIs(t, err, enquiryform.ErrUnsupportedFileType)
				assert.Nil(t, form.Attachment())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, form.Attachment())
			assert.Equal(t, tt.filename, form.Attachment().Filename)
		})
	}
}

func TestForm_AttachFileReplacesPrevious(t *testing.T) {
	form := enquiryform.New("http://localhost", httpclient.NewStandardClient())

	require.NoError(t, form.AttachFile("first.pdf", "application/pdf", []byte("one")))
	require.NoError(t, form.AttachFile("second.docx", "", []byte("two")))

	attachment := form.Attachment()
	require.NotNil(t, attachment)
	assert.Equal(t, "second.docx", attachment.Filename)

	// A rejected file leaves the staged one untouched
	assert.Error(t, form.AttachFile("bad.txt", "text/plain", []byte("three")))
	assert.Equal(t, "second.docx", form.Attachment().Filename)
}

func TestForm_SubmitSuccessResetsForm(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusOK, `{"message":"Email sent successfully"}`, &captured)
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())
	require.NoError(t, form.SetField("motorType", models.MotorTypeSolidYoke))
	require.NoError(t, form.SetField("replacement", models.ReplacementYes))
	require.NoError(t, form.SetExistingMotorField("rpm", "1500"))
	require.NoError(t, form.AttachFile("specs.pdf", "application/pdf", []byte("%PDF-1.4")))

	require.NoError(t, form.Submit(context.Background()))

	assert.True(t, captured.formDataSent)
	assert.Equal(t, models.MotorTypeSolidYoke, captured.record.MotorType)
	assert.Equal(t, "1500", captured.record.ExistingMotor.RPM)
	assert.True(t, captured.hasFile)
	assert.Equal(t, "specs.pdf", captured.filename)
	assert.Equal(t, "application/pdf", captured.fileType)
	assert.Equal(t, []byte("%PDF-1.4"), captured.fileContent)

	// Back to defaults
	record := form.Record()
	assert.Empty(t, record.MotorType)
	assert.Equal(t, models.OfferEstimated, record.OfferRequirement)
	assert.Equal(t, models.ReplacementNo, record.Replacement)
	assert.Nil(t, form.Attachment())
	assert.Equal(t, enquiryform.StateIdle, form.State())
}

func TestForm_SubmitFailurePreservesFields(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusInternalServerError,
		`{"message":"Failed to send email","error":"smtp: connection refused"}`, &captured)
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())
	require.NoError(t, form.SetField("motorType", models.MotorTypeLaminatedYoke))
	require.NoError(t, form.AttachFile("specs.pdf", "application/pdf", []byte("x")))

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, enquiryform.ErrSubmitFailed)
	assert.Contains(t, err.Error(), "Failed to send email")
	assert.Contains(t, err.Error(), "500")

	// User input survives for retry
	assert.Equal(t, models.MotorTypeLaminatedYoke, form.Record().MotorType)
	require.NotNil(t, form.Attachment())
	assert.Equal(t, enquiryform.StateIdle, form.State())
}

func TestForm_SubmitMalformedResponseBody(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusOK, "<html>gateway error</html>", &captured)
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, enquiryform.ErrSubmitFailed)
	assert.Contains(t, err.Error(), "malformed response body")
}

func TestForm_SubmitValidationRejectsLongDescription(t *testing.T) {
	var captured capturedSubmission
	server := submissionServer(t, http.StatusOK, `{"message":"Email sent successfully"}`, &captured)
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())
	require.NoError(t, form.SetField("application", models.OptionOther))
	require.NoError(t, form.SetField("dutyDescription", strings.Repeat("x", 1001)))

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, enquiryform.ErrSubmitFailed)
	assert.False(t, captured.formDataSent, "over-length record must not reach the wire")
	assert.Equal(t, enquiryform.StateIdle, form.State())

	// Right at the bound the record passes validation and is sent
	require.NoError(t, form.SetField("dutyDescription", strings.Repeat("x", 1000)))
	require.NoError(t, form.Submit(context.Background()))
	assert.True(t, captured.formDataSent)
}

func TestForm_SubmitInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"Email sent successfully"}`)
	}))
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = form.Submit(context.Background())
	}()

	<-started
	assert.Equal(t, enquiryform.StateSubmitting, form.State())
	assert.ErrorIs(t, form.Submit(context.Background()), enquiryform.ErrSubmissionInFlight)

	close(release)
	wg.Wait()
	assert.NoError(t, firstErr)
	assert.Equal(t, enquiryform.StateIdle, form.State())
}

func TestForm_MultipartOmitsFileWhenNoneStaged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		require.NoError(t, err)

		var partNames []string
		for {
			part, err := reader.NextPart()
			if err != nil {
				break
			}
			partNames = append(partNames, part.FormName())
		}
		assert.Equal(t, []string{"formData"}, partNames)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"Email sent successfully"}`)
	}))
	defer server.Close()

	form := enquiryform.New(server.URL, httpclient.NewStandardClient())
	require.NoError(t, form.Submit(context.Background()))
}
