package jobsource

func intRef(v int) *int { return &v }

type sample struct {
	id, source, sourceID string
	title, company       string
	location             string
	remote               bool
	description          string
	jobType, level       string
	salaryMin, salaryMax int
	skills               []string
	experience           int
	education            string
	applyURL             string
}

var sampleCatalogue = []sample{
	{
		id: "sample_1", source: SourceInternal, sourceID: "SAMPLE-001",
		title: "Fashion Designer", company: "FabIndia", location: "Bengaluru, Karnataka",
		description: "Design contemporary fashion collections inspired by traditional Indian textiles. Work with artisans across India to create sustainable fashion products.",
		jobType: "full-time", level: "mid", salaryMin: 600000, salaryMax: 1200000,
		skills: []string{"Fashion Design", "Adobe Illustrator", "Textile Knowledge", "Trend Analysis"},
		experience: 3, education: "B.Des in Fashion Design", applyURL: "https://fabindia.com/careers",
	},
	{
		id: "sample_2", source: SourceInternal, sourceID: "SAMPLE-002",
		title: "Sustainable Fashion Consultant", company: "Aditya Birla Fashion", location: "Mumbai, Maharashtra",
		description: "Lead sustainability initiatives across fashion brands. Develop circular economy strategies and ESG compliance frameworks.",
		jobType: "full-time", level: "senior", salaryMin: 1500000, salaryMax: 2500000,
		skills: []string{"Sustainability", "ESG", "Fashion Industry", "Project Management"},
		experience: 5, applyURL: "https://abfrl.com/careers",
	},
	{
		id: "sample_3", source: SourceInternal, sourceID: "SAMPLE-003",
		title: "Software Developer - React", company: "TCS", location: "Bengaluru, Karnataka",
		description: "Build scalable web applications using React.js and Node.js. Work in agile teams on enterprise projects.",
		jobType: "full-time", level: "entry", salaryMin: 400000, salaryMax: 800000,
		skills: []string{"React.js", "JavaScript", "Node.js", "Git"},
		experience: 0, education: "B.Tech/BE in Computer Science", applyURL: "https://tcs.com/careers",
	},
	{
		id: "sample_4", source: SourceInternal, sourceID: "SAMPLE-004",
		title: "Data Analyst", company: "Flipkart", location: "Bengaluru, Karnataka", remote: true,
		description: "Analyze large datasets to drive business decisions. Create dashboards and reports for stakeholders.",
		jobType: "full-time", level: "mid", salaryMin: 800000, salaryMax: 1400000,
		skills: []string{"Python", "SQL", "Power BI", "Excel", "Statistics"},
		experience: 2, applyURL: "https://flipkart.com/careers",
	},
	{
		id: "sample_5", source: SourceInternal, sourceID: "SAMPLE-005",
		title: "Marketing Manager", company: "Swiggy", location: "Bengaluru, Karnataka",
		description: "Lead marketing campaigns for food delivery platform. Drive user acquisition and brand awareness.",
		jobType: "full-time", level: "mid", salaryMin: 1200000, salaryMax: 1800000,
		skills: []string{"Digital Marketing", "Brand Management", "Analytics", "Team Leadership"},
		experience: 4, applyURL: "https://swiggy.com/careers",
	},
	{
		id: "sample_6", source: "naukri", sourceID: "NAUKRI-001",
		title: "Textile Engineer", company: "Raymond Limited", location: "Thane, Maharashtra",
		description: "Manage textile production processes. Ensure quality standards and optimize manufacturing efficiency.",
		jobType: "full-time", level: "mid", salaryMin: 700000, salaryMax: 1000000,
		skills: []string{"Textile Engineering", "Quality Control", "Production Management"},
		experience: 3, applyURL: "https://naukri.com/raymond-jobs",
	},
	{
		id: "sample_7", source: "mercor", sourceID: "MERCOR-001",
		title: "AI/ML Engineer", company: "Mercor AI", location: "Remote", remote: true,
		description: "Build AI models for talent matching platform. Work with cutting-edge NLP and recommendation systems.",
		jobType: "full-time", level: "mid", salaryMin: 2000000, salaryMax: 3500000,
		skills: []string{"Python", "Machine Learning", "NLP", "TensorFlow", "PyTorch"},
		experience: 3, applyURL: "https://mercor.com/careers",
	},
	{
		id: "sample_8", source: "quikr", sourceID: "QUIKR-001",
		title: "Delivery Executive", company: "Zepto", location: "Bengaluru, Karnataka",
		description: "Quick commerce delivery partner. Flexible hours, good earnings potential.",
		jobType: "part-time", level: "entry", salaryMin: 180000, salaryMax: 360000,
		skills: []string{"Bike Driving", "Navigation", "Customer Service"},
		experience: 0, applyURL: "https://quikr.com/jobs",
	},
}

// Samples returns a fresh copy of the built-in demo catalogue.
func Samples() []AggregatedJob {
	jobs := make([]AggregatedJob, 0, len(sampleCatalogue))
	for _, s := range sampleCatalogue {
		job := newJob(s.source, s.sourceID)
		job.ID = s.id
		job.Title = s.title
		job.CompanyName = s.company
		job.Location = s.location
		job.IsRemote = s.remote
		job.Description = s.description
		job.JobType = s.jobType
		job.ExperienceLevel = s.level
		job.SalaryMin = intRef(s.salaryMin)
		job.SalaryMax = intRef(s.salaryMax)
		job.RequiredSkills = append([]string(nil), s.skills...)
		job.RequiredExperienceYears = intRef(s.experience)
		job.RequiredEducation = s.education
		job.ApplyURL = s.applyURL
		jobs = append(jobs, job)
	}
	return jobs
}
