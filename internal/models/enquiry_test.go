package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltdrive/enquiry-api/internal/models"
)

func TestEnquiryRecord_UnmarshalWireNames(t *testing.T) {
	payload := `{
		"motorType": "SOLID-YOKE",
		"application": "other",
		"dutyDescription": "Reversing hot mill drive",
		"kw": "75",
		"hp": "100",
		"baseRpm": "1500",
		"offerRequirement": "firm",
		"replacement": "yes",
		"existingMotor": {"make": "BHEL", "rpm": "1500"}
	}`

	var record models.EnquiryRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))

	assert.Equal(t, models.MotorTypeSolidYoke, record.MotorType)
	assert.Equal(t, models.OptionOther, record.Application)
	assert.Equal(t, "75", record.KW)
	assert.Equal(t, "1500", record.BaseRPM)
	assert.Equal(t, models.OfferFirm, record.OfferRequirement)
	require.NotNil(t, record.ExistingMotor)
	assert.Equal(t, "BHEL", record.ExistingMotor.Make)
	assert.Equal(t, "1500", record.ExistingMotor.RPM)
}

func TestEnquiryRecord_EmptyFieldsOmittedOnWire(t *testing.T) {
	record := models.EnquiryRecord{MotorType: models.MotorTypeLaminatedYoke}

	data, err := json.Marshal(&record)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, map[string]any{"motorType": "LAMINATED-YOKE"}, wire)
}

func TestEnquiryRecord_IsReplacement(t *testing.T) {
	assert.True(t, (&models.EnquiryRecord{Replacement: models.ReplacementYes}).IsReplacement())
	assert.False(t, (&models.EnquiryRecord{Replacement: models.ReplacementNo}).IsReplacement())
	assert.False(t, (&models.EnquiryRecord{}).IsReplacement())
}

func TestEnquiryResponse_ErrorOmittedWhenEmpty(t *testing.T) {
	success, err := json.Marshal(models.EnquiryResponse{Message: "Email sent successfully"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Email sent successfully"}`, string(success))

	failure, err := json.Marshal(models.EnquiryResponse{Message: "Failed to send email", Error: "smtp timeout"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Failed to send email","error":"smtp timeout"}`, string(failure))
}
