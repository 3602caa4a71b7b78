package portfolio

import "slices"

const (
	DefaultHeroImage     = "profile.jpeg"
	FallbackHeroImageURL = "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&q=80&w=800"
)

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

type Education struct {
	Institution string   `json:"institution"`
	Major       string   `json:"major"`
	Period      string   `json:"period"`
	Details     []string `json:"details"`
}

type Certification struct {
	Title   string `json:"title"`
	Issuer  string `json:"issuer"`
	Date    string `json:"date"`
	Details string `json:"details"`
}

type Profile struct {
	Name           string          `json:"name"`
	Headline       string          `json:"headline"`
	Summary        string          `json:"summary"`
	ProfileImage   string          `json:"profile_image"`
	Contact        Contact         `json:"contact"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

// BundledDataset ships with the binary and is never written at run time.
type BundledDataset struct {
	Profile    Profile           `json:"profile"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	Skills     []SkillGroup      `json:"skills"`
}

// Bundled returns a copy of the shipped dataset; callers may not alter the original.
func Bundled() BundledDataset {
	return bundled.clone()
}

func (d BundledDataset) clone() BundledDataset {
	out := d
	out.Profile.Education = make([]Education, len(d.Profile.Education))
	for i, e := range d.Profile.Education {
		e.Details = slices.Clone(e.Details)
		out.Profile.Education[i] = e
	}
	out.Profile.Certifications = slices.Clone(d.Profile.Certifications)

	out.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		e.Achievements = slices.Clone(e.Achievements)
		out.Experience[i] = e
	}
	out.Projects = make([]ProjectEntry, len(d.Projects))
	for i, p := range d.Projects {
		p.Stack = slices.Clone(p.Stack)
		out.Projects[i] = p
	}
	out.Skills = make([]SkillGroup, len(d.Skills))
	for i, s := range d.Skills {
		s.Items = slices.Clone(s.Items)
		out.Skills[i] = s
	}
	return out
}

var bundled = BundledDataset{
	Profile: Profile{
		Name:         "Mozza Bunga Tarmuji",
		Headline:     "Full Stack Developer & AI Enthusiast",
		Summary:      "Passionate developer with a focus on building scalable web applications and integrating AI solutions.",
		ProfileImage: DefaultHeroImage,
		Contact: Contact{
			Email:    "mozza@example.com",
			Phone:    "+62 812 3456 7890",
			LinkedIn: "linkedin.com/in/mozza",
			Location: "Indonesia",
		},
		Education: []Education{
			{
				Institution: "University of Technology",
				Major:       "Computer Science",
				Period:      "2018 - 2022",
				Details: []string{
					"Focus on Software Engineering",
					"GPA: 3.8/4.0",
				},
			},
		},
		Certifications: []Certification{
			{
				Title:   "AWS Certified Cloud Practitioner",
				Issuer:  "Amazon Web Services",
				Date:    "2023",
				Details: "Foundational cloud computing knowledge",
			},
		},
	},
	Experience: []ExperienceEntry{
		{
			Role:     "Frontend Developer",
			Company:  "Tech Solutions Inc.",
			Period:   "2022 - Present",
			Location: "Jakarta, Indonesia",
			Type:     "Full-time",
			Achievements: []string{
				"Developed responsive web applications using React and TypeScript",
				"Improved site performance by 40%",
			},
		},
	},
	Skills: []SkillGroup{
		{Category: "Frontend", Items: []string{"React", "TypeScript", "Tailwind CSS", "Next.js"}},
		{Category: "Backend", Items: []string{"Node.js", "Express", "PostgreSQL"}},
		{Category: "Tools", Items: []string{"Git", "Docker", "VS Code"}},
	},
	Projects: []ProjectEntry{
		{
			Title:       "Portfolio Website",
			Description: "My personal portfolio website built with React and Framer Motion.",
			Year:        "2024",
			Stack:       []string{"React", "TypeScript", "Vite", "Tailwind"},
			Impact:      "Showcased projects to potential clients",
		},
	},
}
