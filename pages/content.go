package pages

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate

import (
	"strconv"
	"strings"
)

const pageTitle = "The Best School - International Education in Poland"

// LandingView is everything the landing page needs besides static content.
type LandingView struct {
	Contact          FormView
	Enrollment       FormView
	TurnstileSiteKey string
}

type NavItem struct {
	Label string
	Href  string
}

type Program struct {
	ID          string
	Title       string
	Description string
	AgeRange    string
	Highlights  []string
}

type Testimonial struct {
	Name    string
	Role    string
	Content string
	Rating  int
}

type SchoolInfo struct {
	Name               string
	Tagline            string
	Mission            string
	FoundedYear        int
	StudentsCount      string
	TeachersCount      string
	NationalitiesCount string
}

type ContactInfo struct {
	Address   string
	Email     string
	Phone     string
	Facebook  string
	Instagram string
	LinkedIn  string
}

var Navigation = []NavItem{
	{Label: "About Us", Href: "#about"},
	{Label: "Programs", Href: "#programs"},
	{Label: "Admissions", Href: "#enrollment"},
	{Label: "Contact", Href: "#contact"},
}

var School = SchoolInfo{
	Name:               "The Best School",
	Tagline:            "Excellence in Education for International Students",
	Mission:            "Empowering global minds through world-class education in the heart of Poland",
	FoundedYear:        2020,
	StudentsCount:      "500+",
	TeachersCount:      "50+",
	NationalitiesCount: "25+",
}

var Programs = []Program{
	{
		ID:          "elementary",
		Title:       "Elementary Program",
		Description: "Building strong foundations for young learners with international curriculum and multilingual approach.",
		AgeRange:    "6-11 years",
		Highlights: []string{
			"Cambridge Primary Curriculum",
			"Multilingual Education (English, Polish)",
			"STEAM Learning Approach",
			"Cultural Integration Programs",
		},
	},
	{
		ID:          "middle-school",
		Title:       "Middle School Program",
		Description: "Developing critical thinking and global citizenship through comprehensive academic excellence.",
		AgeRange:    "12-14 years",
		Highlights: []string{
			"International Baccalaureate MYP",
			"Advanced Language Programs",
			"Leadership Development",
			"Global Perspectives Studies",
		},
	},
	{
		ID:          "high-school",
		Title:       "High School Program",
		Description: "Preparing students for top universities worldwide with rigorous academic standards.",
		AgeRange:    "15-18 years",
		Highlights: []string{
			"IB Diploma Programme",
			"University Preparation",
			"Research Projects",
			"International Exchanges",
		},
	},
}

var Testimonials = []Testimonial{
	{
		Name:    "Sarah Johnson",
		Role:    "Parent from UK",
		Content: "The Best School has exceeded our expectations. My daughter Emma has thrived in the international environment and her academic progress has been remarkable.",
		Rating:  5,
	},
	{
		Name:    "Michael Chen",
		Role:    "Student from Singapore",
		Content: "The teachers here truly care about each student's success. The IB program prepared me perfectly for university admission to Oxford.",
		Rating:  5,
	},
	{
		Name:    "Anna Rodriguez",
		Role:    "Parent from Spain",
		Content: "Moving to Poland was a big decision for our family. The Best School made the transition smooth and our son loves the multicultural environment.",
		Rating:  5,
	},
	{
		Name:    "David Thompson",
		Role:    "Parent from Canada",
		Content: "The quality of education and the individual attention each student receives is outstanding. We couldn't be happier with our choice.",
		Rating:  5,
	},
}

var Contact = ContactInfo{
	Address:   "ul. Akademicka 15, 00-001 Warsaw, Poland",
	Email:     "admissions@thebestschool.edu.pl",
	Phone:     "+48 22 123 4567",
	Facebook:  "https://facebook.com/thebestschool",
	Instagram: "https://instagram.com/thebestschool",
	LinkedIn:  "https://linkedin.com/company/thebestschool",
}

var ContactSubjects = []string{
	"General Inquiry",
	"Admissions",
	"Academic Programs",
	"Campus Visit",
	"Financial Aid",
	"Other",
}

// ProgramTitles are the values offered by the enrollment program select.
func ProgramTitles() []string {
	titles := make([]string, 0, len(Programs))
	for _, p := range Programs {
		titles = append(titles, p.Title)
	}
	return titles
}

type stat struct {
	Label string
	Value string
}

func schoolStats() []stat {
	return []stat{
		{"Founded", strconv.Itoa(School.FoundedYear)},
		{"Students", School.StudentsCount},
		{"Teachers", School.TeachersCount},
		{"Nationalities", School.NationalitiesCount},
	}
}

func socialLinks() []NavItem {
	return []NavItem{
		{Label: "Facebook", Href: Contact.Facebook},
		{Label: "Instagram", Href: Contact.Instagram},
		{Label: "LinkedIn", Href: Contact.LinkedIn},
	}
}

func telHref(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}
