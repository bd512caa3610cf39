package model

// Categorical values offered to the presentation layer.

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Practice string

const (
	PracticeGovernment Practice = "Government"
	PracticePrivate    Practice = "Private"
)

type Speciality string

type HospitalType string

type District string

// Option is one selectable value with its display text.
type Option struct {
	Value       string `json:"value"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

var specialities = []Option{
	{"Siddha", "Siddha", "The Siddha system is based on a combination of ancient medicinal practices and spiritual disciplines as well as alchemy and mysticism"},
	{"Allergist", "Allergist", "Specializes in determining food and environmental allergies"},
	{"Anesthesiologist", "Anesthesiologist", "Specializes in pain prevention during surgery"},
	{"Cardiologist", "Cardiologist", "Heart specialist"},
	{"Chiropractor", "Chiropractor", "Back specialist"},
	{"Dentist", "Dentist", "Tooth specialist"},
	{"Dermatologist", "Dermatologist", "Skin specialist"},
	{"FertilitySpecialist", "Fertility Specialist", "Helps people who have difficulty getting pregnant"},
	{"Gynecologist", "Gynecologist", "Specializes in women's needs"},
	{"MassageTherapist", "Massage Therapist", "Specializes in muscle relaxation"},
	{"Naturopath", "Naturopath", "Specializes in natural cures and remedies"},
	{"Neurologist", "Neurologist", "Brain specialist"},
	{"Obstetrician", "Obstetrician", "Specialist for pregnant women"},
	{"OccupationalTherapist", "Occupational Therapist", "Specializes in workplace health"},
	{"Oncologist", "Oncologist", "Tumour specialist, including cancer"},
	{"Ophthalmologist", "Ophthalmologist", "Specializes in eye diseases"},
	{"Pediatrician", "Pediatrician", "Specialist for babies and children"},
	{"PhysicalTherapist", "Physical Therapist", "Specializes in the body's movement"},
	{"Podiatrist", "Podiatrist", "Foot specialist"},
	{"Psychiatrist", "Psychiatrist", "Specialist in mental health"},
	{"Radiologist", "Radiologist", "Specializes in imaging tests"},
	{"GeneralSurgeons", "General Surgeons", "Operate on all parts of your body"},
	{"GeneralPhysician", "General Physician", "Highly trained specialists who provide a range of non-surgical health care to adult patients"},
}

var hospitalTypes = []Option{
	{"General", "General Medical & Surgical Hospitals", "General Medical & Surgical Hospitals"},
	{"Specialty", "Specialty Hospitals", "Specialty Hospitals"},
	{"Clinic", "Clinics", "Clinics"},
	{"Psychiatric", "Psychiatric Hospitals", "Psychiatric Hospitals"},
	{"Teaching", "Teaching Hospitals", "Teaching Hospitals"},
}

var districts = []Option{
	{Value: "Ariyalur", Name: "Ariyalur"},
	{Value: "Chengalpattu", Name: "Chengalpattu"},
	{Value: "Chennai", Name: "Chennai"},
	{Value: "Coimbatore", Name: "Coimbatore"},
	{Value: "Cuddalore", Name: "Cuddalore"},
	{Value: "Dharmapuri", Name: "Dharmapuri"},
	{Value: "Dindigul", Name: "Dindigul"},
	{Value: "Erode", Name: "Erode"},
	{Value: "Kallakurichi", Name: "Kallakurichi"},
	{Value: "Kanchipuram", Name: "Kanchipuram"},
	{Value: "Kanyakumari", Name: "Kanyakumari"},
	{Value: "Karur", Name: "Karur"},
	{Value: "Krishnagiri", Name: "Krishnagiri"},
	{Value: "Madurai", Name: "Madurai"},
	{Value: "Nagapattinam", Name: "Nagapattinam"},
	{Value: "Namakkal", Name: "Namakkal"},
	{Value: "Nilgiris", Name: "Nilgiris"},
	{Value: "Perambalur", Name: "Perambalur"},
	{Value: "Pudukkottai", Name: "Pudukkottai"},
	{Value: "Ramanathapuram", Name: "Ramanathapuram"},
	{Value: "Ranipet", Name: "Ranipet"},
	{Value: "Salem", Name: "Salem"},
	{Value: "Sivaganga", Name: "Sivaganga"},
	{Value: "Tenkasi", Name: "Tenkasi"},
	{Value: "Thanjavur", Name: "Thanjavur"},
	{Value: "Theni", Name: "Theni"},
	{Value: "Thoothukudi", Name: "Thoothukudi"},
	{Value: "Tiruchirappalli", Name: "Tiruchirappalli"},
	{Value: "Tirunelveli", Name: "Tirunelveli"},
	{Value: "Tirupathur", Name: "Tirupathur"},
	{Value: "Tiruppur", Name: "Tiruppur"},
	{Value: "Tiruvallur", Name: "Tiruvallur"},
	{Value: "Tiruvannamalai", Name: "Tiruvannamalai"},
	{Value: "Tiruvarur", Name: "Tiruvarur"},
	{Value: "Vellore", Name: "Vellore"},
	{Value: "Viluppuram", Name: "Viluppuram"},
	{Value: "Virudhunagar", Name: "Virudhunagar"},
}

// Catalog groups every enumeration for a form.
type Catalog struct {
	Specialities       []Option `json:"specialities"`
	HospitalTypes      []Option `json:"hospital_types"`
	Districts          []Option `json:"districts"`
	Genders            []Option `json:"genders"`
	Practices          []Option `json:"practices"`
	ContactPreferences []Option `json:"contact_preferences"`
}

// NewCatalog returns copies so callers cannot mutate the package tables.
func NewCatalog() Catalog {
	return Catalog{
		Specialities:  append([]Option(nil), specialities...),
		HospitalTypes: append([]Option(nil), hospitalTypes...),
		Districts:     append([]Option(nil), districts...),
		Genders: []Option{
			{Value: string(GenderMale), Name: string(GenderMale)},
			{Value: string(GenderFemale), Name: string(GenderFemale)},
		},
		Practices: []Option{
			{Value: string(PracticeGovernment), Name: string(PracticeGovernment)},
			{Value: string(PracticePrivate), Name: string(PracticePrivate)},
		},
		ContactPreferences: []Option{
			{Value: string(ContactAlways), Name: "Always"},
			{Value: string(ContactEmergencyOnly), Name: "Emergency Only"},
			{Value: string(ContactNever), Name: "Never"},
		},
	}
}

func contains(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func (s Speciality) IsValid() bool   { return contains(specialities, string(s)) }
func (t HospitalType) IsValid() bool { return contains(hospitalTypes, string(t)) }
func (d District) IsValid() bool     { return contains(districts, string(d)) }

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

func (p Practice) IsValid() bool {
	return p == PracticeGovernment || p == PracticePrivate
}

func (c ContactPreference) IsValid() bool {
	return c == ContactAlways || c == ContactEmergencyOnly || c == ContactNever
}
