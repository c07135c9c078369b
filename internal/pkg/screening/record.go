package screening

// Record is the flat newborn cardiac screening form. Empty strings mean the
// finding was not recorded.
type Record struct {
	ID             string `json:"id,omitempty"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"max=100"`
	Sex            string `json:"sex" validate:"required,fhir_gender"`
	DOB            string `json:"dob" validate:"required,datetime=2006-01-02"`
	Age            int    `json:"age" validate:"gte=0"`
	OrganizationID string `json:"organization_id,omitempty"`
	Active         bool   `json:"active"`

	// Birth and delivery
	GestationalAge  int     `json:"gestational_age" validate:"gte=0,lte=45"`
	ModeOfDelivery  string  `json:"mode_of_delivery"`
	BirthWeight     float64 `json:"birth_weight" validate:"gte=0"`
	ApgarScores1Min int     `json:"apgar_scores_1min" validate:"gte=0,lte=10"`
	ApgarScores5Min int     `json:"apgar_scores_5min" validate:"gte=0,lte=10"`
	Resuscitation   string  `json:"resuscitation"`

	// Maternal history
	MaternalAge           int    `json:"maternal_age" validate:"gte=0"`
	Parity                int    `json:"parity" validate:"gte=0"`
	PrenatalUltrasound    string `json:"prenatal_ultrasound"`
	CHDCCHD               string `json:"chd_cchd"`
	ExtracardiacDiagnosis string `json:"extracardiac_diagnosis"`
	Sepsis                string `json:"sepsis"`

	// Vitals
	HR                       int     `json:"hr" validate:"gte=0"`
	RR                       int     `json:"rr" validate:"gte=0"`
	T                        float64 `json:"t"`
	Cyanosis                 string  `json:"cyanosis"`
	IncreasedWorkOfBreathing string  `json:"increased_work_of_breathing"`
	HC                       float64 `json:"hc" validate:"gte=0"`

	// Physical examination
	Anterior           string `json:"anterior"`
	Posterior          string `json:"posterior"`
	PupillaryResponse  string `json:"pupillary_response"`
	RedReflex          string `json:"red_reflex"`
	ChoanalAtresia     string `json:"choanal_atresia"`
	BreathSounds       string `json:"breath_sounds"`
	HeartSounds        string `json:"heart_sounds"`
	PalpableMasses     string `json:"palpable_masses"`
	UmbilicalCord      string `json:"umbilical_cord"`
	PositionPatency    string `json:"position_patency"`
	SpineAlignment     string `json:"spine_alignment"`
	SacralDimple       string `json:"sacral_dimple"`
	FemoralPulsesRight string `json:"femoral_pulses_right"`
	FemoralPulsesLeft  string `json:"femoral_pulses_left"`
	HipDysplasia       string `json:"hip_dysplasia"`
	MoroReflex         string `json:"moro_reflex"`
	RootingReflex      string `json:"rooting_reflex"`
	SuckingReflex      string `json:"sucking_reflex"`
	Tone               string `json:"tone"`
	Activity           string `json:"activity"`

	// Oxygen saturation, percent
	RightUpperArm float64 `json:"right_upper_arm" validate:"gte=0,lte=100"`
	RightLeg      float64 `json:"right_leg" validate:"gte=0,lte=100"`
	CCHDFirst     string  `json:"cchd_first"`

	// Family history of cardiac conditions
	CongenitalHeartDisease string `json:"congenital_heart_disease"`
	OpenHeartSurgery       string `json:"open_heart_surgery"`
	SuddenCardiacDeath     string `json:"sudden_cardiac_death"`
	Pacemaker              string `json:"pacemaker"`

	Dysmorphism string `json:"dysmorphism"`
	Others      string `json:"others"`

	// Plan and follow-up
	Discharge      string `json:"discharge"`
	RepeatCCHD     string `json:"repeat_cchd"`
	Echocardiogram bool   `json:"echocardiogram"`
	CXR            bool   `json:"cxr"`
	ECG            bool   `json:"ecg"`
	Ultrasound     bool   `json:"ultrasound"`
	FollowUp       string `json:"follow_up"`
	CheckedBy      string `json:"checked_by"`
}
