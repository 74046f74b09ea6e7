package services

import (
	"fmt"
	"strings"

	"github.com/voltdrive/enquiry-api/internal/models"
)

// notSpecified is rendered for every absent or empty field.
const notSpecified = "Not specified"

// ComposeSubject derives the email subject from the motor type.
func ComposeSubject(r *models.EnquiryRecord) string {
	motorType := r.MotorType
	if motorType == "" {
		motorType = "New Enquiry"
	}
	return "DC Motor Enquiry - " + motorType
}

// ComposeTextBody renders the plain-text email body. Pure: composing twice
// from the same record yields byte-identical output.
func ComposeTextBody(r *models.EnquiryRecord) string {
	var b strings.Builder

	b.WriteString("DC MOTOR ENQUIRY FORM SUBMISSION\n\n")
	b.WriteString("------- MOTOR SPECIFICATIONS -------\n")
	fmt.Fprintf(&b, "Type of Motor: %s\n", orDefault(r.MotorType))
	fmt.Fprintf(&b, "Application: %s\n", orDefault(r.Application))

	if r.Application == models.OptionOther && r.DutyDescription != "" {
		fmt.Fprintf(&b, "Duty Description: %s\n", r.DutyDescription)
	}

	fmt.Fprintf(&b, "Power: %s KW / %s HP\n", orDefault(r.KW), orDefault(r.HP))
	fmt.Fprintf(&b, "Armature Voltage: %s\n", orDefault(r.ArmatureVoltage))
	fmt.Fprintf(&b, "Field Voltage: %s\n", orDefault(r.FieldVoltage))
	fmt.Fprintf(&b, "Base RPM: %s\n", orDefault(r.BaseRPM))
	fmt.Fprintf(&b, "Speed Variation: %s\n", orDefault(r.SpeedVariation))
	fmt.Fprintf(&b, "Overload Class: %s\n", orDefault(r.OverloadClass))
	fmt.Fprintf(&b, "Expected Delivery: %s\n", orDefault(r.Delivery))

	if r.Delivery == models.OptionOther && r.DeliveryDutyDescription != "" {
		fmt.Fprintf(&b, "Delivery Description: %s\n", r.DeliveryDutyDescription)
	}

	fmt.Fprintf(&b, "Offer Requirement: %s\n", offerLabel(r.OfferRequirement))

	if r.Description != "" {
		b.WriteString("\n------- ADDITIONAL DESCRIPTION -------\n")
		fmt.Fprintf(&b, "%s\n", r.Description)
	}

	fmt.Fprintf(&b, "\nRequirement is for Replacement: %s\n", replacementLabel(r.Replacement))

	if r.IsReplacement() {
		em := r.ExistingMotor
		if em == nil {
			em = &models.ExistingMotorRecord{}
		}
		b.WriteString("\n------- EXISTING MOTOR DETAILS -------\n")
		fmt.Fprintf(&b, "Make: %s\n", orDefault(em.Make))
		fmt.Fprintf(&b, "Power: %s KW / %s HP\n", orDefault(em.KW), orDefault(em.HP))
		fmt.Fprintf(&b, "RPM: %s\n", orDefault(em.RPM))
		fmt.Fprintf(&b, "Mounting: %s\n", orDefault(em.Mounting))
		fmt.Fprintf(&b, "Pole: %s\n", orDefault(em.Pole))
		fmt.Fprintf(&b, "Application: %s\n", orDefault(em.Application))
	}

	if r.OtherSpecs != "" {
		b.WriteString("\n------- OTHER SPECIFICATIONS -------\n")
		fmt.Fprintf(&b, "%s\n", r.OtherSpecs)
	}

	return b.String()
}

const (
	htmlLabelCellFirst = `<td style="padding: 8px; border-bottom: 1px solid #eee; width: 30%%;"><strong>%s:</strong></td>`
	htmlLabelCell      = `<td style="padding: 8px; border-bottom: 1px solid #eee;"><strong>%s:</strong></td>`
	htmlValueCell      = `<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>`
	htmlSectionHeading = `<h2 style="color: #444; border-bottom: 1px solid #eee; padding-bottom: 10px; margin-top: 20px;">%s</h2>`
)

// ComposeHTMLBody renders the formatted email body as a labeled table.
// Newlines in free-text fields become <br> line breaks.
func ComposeHTMLBody(r *models.EnquiryRecord) string {
	var b strings.Builder

	b.WriteString(`<h1 style="color: #333;">DC Motor Enquiry Form Submission</h1>`)
	b.WriteString(`<div style="margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; background-color: #f9f9f9;">`)
	b.WriteString(`<h2 style="color: #444; border-bottom: 1px solid #eee; padding-bottom: 10px;">Motor Specifications</h2>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)

	writeRowFirst(&b, "Type of Motor", orDefault(r.MotorType))
	writeRow(&b, "Application", orDefault(r.Application))

	if r.Application == models.OptionOther && r.DutyDescription != "" {
		writeRow(&b, "Duty Description", breakLines(r.DutyDescription))
	}

	writeRow(&b, "Power", fmt.Sprintf("%s KW / %s HP", orDefault(r.KW), orDefault(r.HP)))
	writeRow(&b, "Armature Voltage", orDefault(r.ArmatureVoltage))
	writeRow(&b, "Field Voltage", orDefault(r.FieldVoltage))
	writeRow(&b, "Base RPM", orDefault(r.BaseRPM))
	writeRow(&b, "Speed Variation", orDefault(r.SpeedVariation))
	writeRow(&b, "Overload Class", orDefault(r.OverloadClass))
	writeRow(&b, "Expected Delivery", orDefault(r.Delivery))

	if r.Delivery == models.OptionOther && r.DeliveryDutyDescription != "" {
		writeRow(&b, "Delivery Description", breakLines(r.DeliveryDutyDescription))
	}

	writeRow(&b, "Offer Requirement", offerLabel(r.OfferRequirement))
	b.WriteString(`</table>`)

	if r.Description != "" {
		fmt.Fprintf(&b, htmlSectionHeading, "Additional Description")
		fmt.Fprintf(&b, `<p style="padding: 8px;">%s</p>`, breakLines(r.Description))
	}

	fmt.Fprintf(&b, htmlSectionHeading, "Replacement Information")
	fmt.Fprintf(&b, `<p style="padding: 8px;"><strong>Requirement is for Replacement:</strong> %s</p>`, replacementLabel(r.Replacement))

	if r.IsReplacement() {
		em := r.ExistingMotor
		if em == nil {
			em = &models.ExistingMotorRecord{}
		}
		fmt.Fprintf(&b, htmlSectionHeading, "Existing Motor Details")
		b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
		writeRowFirst(&b, "Make", orDefault(em.Make))
		writeRow(&b, "Power", fmt.Sprintf("%s KW / %s HP", orDefault(em.KW), orDefault(em.HP)))
		writeRow(&b, "RPM", orDefault(em.RPM))
		writeRow(&b, "Mounting", orDefault(em.Mounting))
		writeRow(&b, "Pole", orDefault(em.Pole))
		writeRow(&b, "Application", orDefault(em.Application))
		b.WriteString(`</table>`)
	}

	if r.OtherSpecs != "" {
		fmt.Fprintf(&b, htmlSectionHeading, "Other Specifications")
		fmt.Fprintf(&b, `<p style="padding: 8px;">%s</p>`, breakLines(r.OtherSpecs))
	}

	b.WriteString(`</div>`)
	b.WriteString(`<p style="color: #777; font-size: 12px; margin-top: 30px;">This email was sent automatically from your website's DC Motor Enquiry Form.</p>`)

	return b.String()
}

func orDefault(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func offerLabel(offer string) string {
	if offer == models.OfferEstimated {
		return "Estimated"
	}
	return "Firm"
}

func replacementLabel(replacement string) string {
	if replacement == models.ReplacementYes {
		return "Yes"
	}
	return "No"
}

func breakLines(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}

func writeRowFirst(b *strings.Builder, label, value string) {
	b.WriteString("<tr>")
	fmt.Fprintf(b, htmlLabelCellFirst, label)
	fmt.Fprintf(b, htmlValueCell, value)
	b.WriteString("</tr>")
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString("<tr>")
	fmt.Fprintf(b, htmlLabelCell, label)
	fmt.Fprintf(b, htmlValueCell, value)
	b.WriteString("</tr>")
}
