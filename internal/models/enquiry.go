package models

// Motor type options offered by the enquiry form.
const (
	MotorTypeLaminatedYoke = "LAMINATED-YOKE"
	MotorTypeSolidYoke     = "SOLID-YOKE"
)

// Application options. OptionOther unlocks the free-text duty description.
const (
	ApplicationSteelRollingMills = "STEEL-ROLLING-MILLS"
	ApplicationPlasticMachinery  = "PLASTIC-MACHINERY"
	ApplicationSugarMachinery    = "SUGAR-MACHINERY"
)

// Delivery options. OptionOther unlocks the free-text delivery description.
const (
	DeliveryExStock      = "EX.STOCK"
	DeliveryOneToFour    = "1-4"
	DeliveryFourToEight  = "4-8"
	DeliveryOverEight    = "8"
)

// OptionOther is the sentinel shared by the application and delivery selects.
const OptionOther = "other"

// Offer requirement values. OfferEstimated is the form default.
const (
	OfferEstimated = "estimated"
	OfferFirm      = "firm"
)

// Replacement flag values. ReplacementNo is the form default.
const (
	ReplacementYes = "yes"
	ReplacementNo  = "no"
)

// EnquiryRecord is the structured payload submitted by the enquiry form.
// All fields are free-form strings and optional at the wire boundary; numeric
// fields carry whatever text the input widget allowed.
type EnquiryRecord struct {
	MotorType               string               `json:"motorType,omitempty"`
	Application             string               `json:"application,omitempty"`
	DutyDescription         string               `json:"dutyDescription,omitempty" validate:"max=1000"`
	KW                      string               `json:"kw,omitempty"`
	HP                      string               `json:"hp,omitempty"`
	ArmatureVoltage         string               `json:"armatureVoltage,omitempty"`
	FieldVoltage            string               `json:"fieldVoltage,omitempty"`
	BaseRPM                 string               `json:"baseRpm,omitempty"`
	SpeedVariation          string               `json:"speedVariation,omitempty"`
	OverloadClass           string               `json:"overloadClass,omitempty"`
	Delivery                string               `json:"delivery,omitempty"`
	DeliveryDutyDescription string               `json:"deliveryDutyDescription,omitempty" validate:"max=1000"`
	OfferRequirement        string               `json:"offerRequirement,omitempty"`
	Description             string               `json:"description,omitempty"`
	Replacement             string               `json:"replacement,omitempty"`
	ExistingMotor           *ExistingMotorRecord `json:"existingMotor,omitempty"`
	OtherSpecs              string               `json:"otherSpecs,omitempty"`
}

// ExistingMotorRecord describes a motor being replaced. It is only meaningful
// when the parent record's Replacement is "yes".
type ExistingMotorRecord struct {
	Make        string `json:"make,omitempty"`
	KW          string `json:"kw,omitempty"`
	HP          string `json:"hp,omitempty"`
	RPM         string `json:"rpm,omitempty"`
	Mounting    string `json:"mounting,omitempty"`
	Pole        string `json:"pole,omitempty"`
	Application string `json:"application,omitempty"`
}

// IsReplacement reports whether the enquiry concerns replacing an existing motor.
func (r *EnquiryRecord) IsReplacement() bool {
	return r.Replacement == ReplacementYes
}

// EnquiryResponse is the JSON body returned by the enquiry endpoint.
type EnquiryResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
