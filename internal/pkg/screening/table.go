package screening

import (
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/fhir_dto"
)

func loinc(code, display string) fhir_dto.Coding {
	return fhir_dto.Coding{System: constvars.FhirSystemLOINC, Code: code, Display: display}
}

func snomed(code, display string) fhir_dto.Coding {
	return fhir_dto.Coding{System: constvars.FhirSystemSNOMED, Code: code, Display: display}
}

func ucum(unit, code string) Unit {
	return Unit{Unit: unit, System: constvars.FhirSystemUCUM, Code: code}
}

// DefaultTable is the newborn screening form. Order is the order of the
// Observation entries in a built bundle.
var DefaultTable = MustCodingTable(
	quantityField("t", loinc("8310-5", "Body Temperature"), "Body temperature", ucum("degC", "Cel"),
		func(r *Record) *float64 { return &r.T }),
	wholeQuantityField("gestational_age", loinc("11884-4", "Gestational age"), "Gestational age", ucum("weeks", "wk"),
		func(r *Record) *int { return &r.GestationalAge }),
	conceptField("mode_of_delivery", snomed("236973005", "Delivery Procedure"), "Mode of Delivery", DeliveryModes,
		func(r *Record) *string { return &r.ModeOfDelivery }),
	quantityField("birth_weight", loinc("29463-7", "Body weight"), "Birth weight", ucum("kg", "kg"),
		func(r *Record) *float64 { return &r.BirthWeight }),
	group("apgar_scores", loinc("9272-6", "1 minute Apgar score"), "Apgar scores",
		integerField("apgar_scores_1min", loinc("9272-6", "1 minute Apgar score"), "1 minute Apgar score",
			func(r *Record) *int { return &r.ApgarScores1Min }),
		integerField("apgar_scores_5min", loinc("9274-2", "5 minute Apgar score"), "5 minute Apgar score",
			func(r *Record) *int { return &r.ApgarScores5Min }),
	),
	stringField("resuscitation", snomed("232717009", "Resuscitation"), "Resuscitation Procedure",
		func(r *Record) *string { return &r.Resuscitation }),
	integerField("parity", loinc("11977-6", "Number of previous pregnancies (parity)"), "Parity",
		func(r *Record) *int { return &r.Parity }),
	integerField("maternal_age", snomed("416413003", "Maternal age"), "Maternal age",
		func(r *Record) *int { return &r.MaternalAge }),
	stringField("chd_cchd", snomed("13213009", "Congenital heart disease"), "CHD/CCHD",
		func(r *Record) *string { return &r.CHDCCHD }),
	stringField("prenatal_ultrasound", snomed("16310003", "Ultrasound"), "Prenatal ultrasound",
		func(r *Record) *string { return &r.PrenatalUltrasound }),
	stringField("sepsis", snomed("78648007", "At risk for infection"), "Risk Factor for Sepsis",
		func(r *Record) *string { return &r.Sepsis }),
	stringField("extracardiac_diagnosis", loinc("29308-4", "Diagnosis"), "Extracardiac diagnosis",
		func(r *Record) *string { return &r.ExtracardiacDiagnosis }),
	wholeQuantityField("hr", loinc("40443-4", "Heart rate"), "Heart rate", ucum("beats/min", "/min"),
		func(r *Record) *int { return &r.HR }),
	wholeQuantityField("rr", loinc("9303-9", "Respiratory rate"), "Respiratory rate", ucum("breaths/min", "/min"),
		func(r *Record) *int { return &r.RR }),
	stringField("cyanosis", snomed("95837007", "Cyanosis (Central)"), "Central Cyanosis",
		func(r *Record) *string { return &r.Cyanosis }),
	stringField("increased_work_of_breathing", snomed("230145002", "Increased Work of Breathing"), "Work of Breathing",
		func(r *Record) *string { return &r.IncreasedWorkOfBreathing }),
	quantityField("hc", snomed("363812007", "Head circumference"), "Head Circumference", ucum("cm", "cm"),
		func(r *Record) *float64 { return &r.HC }),
	group("fontanelles", snomed("404684003", "Clinical Finding"), "Clinical Finding",
		stringField("anterior", fhir_dto.Coding{}, "Anterior Fontanelle",
			func(r *Record) *string { return &r.Anterior }),
		stringField("posterior", fhir_dto.Coding{}, "Posterior Fontanelle",
			func(r *Record) *string { return &r.Posterior }),
	),
	stringField("pupillary_response", loinc("79815-7", "Pupillary Response"), "Pupillary Response",
		func(r *Record) *string { return &r.PupillaryResponse }),
	stringField("red_reflex", snomed("783819001", "Red Reflex"), "Red Reflex",
		func(r *Record) *string { return &r.RedReflex }),
	stringField("choanal_atresia", loinc("1303493008", "Atresia"), "Choanal atresia",
		func(r *Record) *string { return &r.ChoanalAtresia }),
	stringField("breath_sounds", loinc("72072-2", "Breath Sounds"), "Breath Sounds",
		func(r *Record) *string { return &r.BreathSounds }),
	stringField("heart_sounds", loinc("80277-7", "Heart Sounds/Murmurs"), "Heart Sounds",
		func(r *Record) *string { return &r.HeartSounds }),
	stringField("palpable_masses", loinc("271860004", "Abdominal mass"), "Abdominal mass",
		func(r *Record) *string { return &r.PalpableMasses }).physicalExam(),
	stringField("umbilical_cord", snomed("29870000", "Umbilical Cord"), "Umbilical Cord",
		func(r *Record) *string { return &r.UmbilicalCord }).physicalExam(),
	stringField("position_patency", loinc("28028-9", "Anus Position/Patency"), "Anus Position",
		func(r *Record) *string { return &r.PositionPatency }).physicalExam(),
	stringField("spine_alignment", loinc("410730009", "Spine"), "Spine Alignment",
		func(r *Record) *string { return &r.SpineAlignment }).physicalExam(),
	stringField("sacral_dimple", loinc("311897005", "Sacral Dimple/Hair Tufts"), "Sacral Dimple",
		func(r *Record) *string { return &r.SacralDimple }),
	group("femoral_pulses", snomed("7657000", "Femoral Artery"), "Femoral Artery",
		stringField("femoral_pulses_right", snomed("7657000", "Right femoral pulse"), "Right Femoral Pulse",
			func(r *Record) *string { return &r.FemoralPulsesRight }),
		stringField("femoral_pulses_left", snomed("7657000", "Left femoral pulse"), "Left Femoral Pulse",
			func(r *Record) *string { return &r.FemoralPulsesLeft }),
	),
	stringField("hip_dysplasia", snomed("299233007", "Deformity of hip joint"), "Hip Dysplasia",
		func(r *Record) *string { return &r.HipDysplasia }),
	stringField("moro_reflex", snomed("87572000", "Reflex"), "Moro Reflex",
		func(r *Record) *string { return &r.MoroReflex }),
	stringField("rooting_reflex", loinc("56876-6", "Rooting reflex"), "Rooting Reflex",
		func(r *Record) *string { return &r.RootingReflex }),
	stringField("sucking_reflex", loinc("56876-6", "Rooting reflex"), "Sucking Reflex",
		func(r *Record) *string { return &r.SuckingReflex }),
	conceptField("tone", snomed("6918002", "Muscle tone"), "Tone", NormalOrDecreased,
		func(r *Record) *string { return &r.Tone }),
	conceptField("activity", snomed("257733005", "Activity observed"), "Activity", NormalOrDecreased,
		func(r *Record) *string { return &r.Activity }),
	group("oxygen_saturation", loinc("20564-1", "Oxygen saturation"), "Oxygen saturation measurements",
		quantityField("right_upper_arm", snomed("40983000", "Upper arm"), "Oxygen saturation at Right Upper Arm", ucum("%", "%"),
			func(r *Record) *float64 { return &r.RightUpperArm }),
		quantityField("right_leg", snomed("62175007", "Right leg"), "Oxygen saturation at Right Leg", ucum("%", "%"),
			func(r *Record) *float64 { return &r.RightLeg }),
	),
	stringField("cchd_first", loinc("73805-4", "CCHD newborn screening panel"), "CCHD Screening (1st)",
		func(r *Record) *string { return &r.CCHDFirst }),
	group("family_history", loinc("39155-7", "Family history of disease or condition"), "Family History of Cardiac Conditions",
		stringField("congenital_heart_disease", snomed("13213009", "Congenital heart disease"), "Congenital Heart Disease",
			func(r *Record) *string { return &r.CongenitalHeartDisease }),
		stringField("open_heart_surgery", snomed("2598006", "Open-heart surgery"), "Open Heart Surgery",
			func(r *Record) *string { return &r.OpenHeartSurgery }),
		stringField("sudden_cardiac_death", snomed("26636000", "Sudden death"), "Sudden cardiac death",
			func(r *Record) *string { return &r.SuddenCardiacDeath }),
		stringField("pacemaker", snomed("118378005", "Pacemaker pulse generator"), "Pacemaker",
			func(r *Record) *string { return &r.Pacemaker }),
	),
	stringField("dysmorphism", snomed("276720006", "Dysmorphism"), "Dysmorphism",
		func(r *Record) *string { return &r.Dysmorphism }),
	stringField("others", loinc("75321-0", "Clinical findings"), "Others",
		func(r *Record) *string { return &r.Others }),
	group("plan", loinc("22026-9", "Plan and Follow-Up"), "Plan & Follow-Up",
		stringField("discharge", loinc("52523-8", "Discharge Status"), "Discharge",
			func(r *Record) *string { return &r.Discharge }),
		stringField("repeat_cchd", snomed("13213009", "Congenital heart disease"), "Repeat CCHD",
			func(r *Record) *string { return &r.RepeatCCHD }),
		booleanField("echocardiogram", snomed("40701008", "Echocardiogram"), "Echocardiogram",
			func(r *Record) *bool { return &r.Echocardiogram }),
		booleanField("cxr", snomed("399208008", "Chest X-Ray (CXR)"), "CXR",
			func(r *Record) *bool { return &r.CXR }),
		booleanField("ecg", snomed("29303009", "ECG"), "ECG",
			func(r *Record) *bool { return &r.ECG }),
		booleanField("ultrasound", snomed("16310003", "Ultrasound"), "Ultrasound",
			func(r *Record) *bool { return &r.Ultrasound }),
		stringField("follow_up", snomed("308273005", "Follow-up"), "Follow-up instructions",
			func(r *Record) *string { return &r.FollowUp }),
		stringField("checked_by", snomed("360160009", "Checking"), "Checked by",
			func(r *Record) *string { return &r.CheckedBy }),
	),
)
