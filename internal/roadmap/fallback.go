package roadmap

// fallbackFor returns the hand-authored roadmap of a role family.
func fallbackFor(f Family) roadmapOutput {
	switch f {
	case FamilyDevOps:
		return devopsFallback()
	case FamilyData:
		return dataFallback()
	default:
		return fullStackFallback()
	}
}

func devopsFallback() roadmapOutput {
	return roadmapOutput{
		CurrentLevel: "beginner",
		Timeline:     "6 months",
		Milestones: []milestoneOutput{
			{
				Month:       1,
				Title:       "Linux & Networking Basics",
				Skills:      []string{"Linux CLI", "Bash Scripting", "OSI Model", "DNS/HTTP"},
				Projects:    []string{"Automated Backup Script", "Local Web Server Setup"},
				Resources:   []string{"Linux Journey", "OverTheWire"},
				Checkpoints: []string{"Master Grep/Sed/Awk", "Configure SSH Keys"},
			},
			{
				Month:       2,
				Title:       "Containerization & CI/CD",
				Skills:      []string{"Docker", "Jenkins/GitHub Actions", "YAML"},
				Projects:    []string{"Dockerize a Node App", "Build CI Pipeline"},
				Resources:   []string{"Docker Documentation", "GitHub Actions Guide"},
				Checkpoints: []string{"Write multi-stage Dockerfile", "Auto-deploy on commit"},
			},
			{
				Month:       3,
				Title:       "Orchestration & IaC",
				Skills:      []string{"Kubernetes", "Terraform", "AWS/Azure Basics"},
				Projects:    []string{"K8s Cluster Deployment", "Terraform VPC"},
				Resources:   []string{"Kubernetes.io", "HashiCorp Learn"},
				Checkpoints: []string{"Deploy Helm Chart", "Provision Cloud Infra"},
			},
		},
		SkillGaps:                 []string{"Kubernetes", "Terraform", "Monitoring"},
		RecommendedCourses:        []string{"Linux Foundation LFS101", "Certified Kubernetes Administrator Prep"},
		InternshipRecommendations: []string{"DevOps Intern", "Cloud Operations Intern"},
		ReadinessScore:            40,
		NextSteps:                 []string{"Get AWS Certified", "Learn Prometheus"},
	}
}

func dataFallback() roadmapOutput {
	return roadmapOutput{
		CurrentLevel: "beginner",
		Timeline:     "6 months",
		Milestones: []milestoneOutput{
			{
				Month:       1,
				Title:       "Python & SQL Mastery",
				Skills:      []string{"Advanced SQL", "Python for Data", "Pandas"},
				Projects:    []string{"Sales Data Analysis", "SQL Query Optimizer"},
				Resources:   []string{"LeetCode SQL", "Kaggle"},
				Checkpoints: []string{"Solve Hard SQL problems", "Clean messy dataset"},
			},
			{
				Month:       2,
				Title:       "ETL & Data Modeling",
				Skills:      []string{"Airflow", "Dimensional Modeling", "PostgreSQL"},
				Projects:    []string{"Build ETL Pipeline", "Star Schema Design"},
				Resources:   []string{"Data Engineering Zoomcamp"},
				Checkpoints: []string{"Automate daily ingest", "Design DB Schema"},
			},
			{
				Month:       3,
				Title:       "Big Data Frameworks",
				Skills:      []string{"Spark", "Hadoop", "Data Lakes"},
				Projects:    []string{"Spark Batch Processing", "Parquet Optimization"},
				Resources:   []string{"Spark Documentation"},
				Checkpoints: []string{"Process 1GB+ dataset", "Optimize partition strategy"},
			},
		},
		SkillGaps:                 []string{"Spark", "Airflow", "System Design"},
		RecommendedCourses:        []string{"Data Engineering Zoomcamp", "Spark and Python for Big Data"},
		InternshipRecommendations: []string{"Data Engineering Intern", "Analytics Intern"},
		ReadinessScore:            45,
		NextSteps:                 []string{"Build Portfolio", "Learn Kafka"},
	}
}

func fullStackFallback() roadmapOutput {
	return roadmapOutput{
		CurrentLevel: "beginner",
		Timeline:     "6 months",
		Milestones: []milestoneOutput{
			{
				Month:       1,
				Title:       "Foundation Building",
				Skills:      []string{"HTML/CSS", "JavaScript Basics", "Git"},
				Projects:    []string{"Personal Portfolio", "Todo App"},
				Resources:   []string{"MDN Web Docs", "FreeCodeCamp"},
				Checkpoints: []string{"Complete basic HTML/CSS course", "Build first project"},
			},
			{
				Month:       2,
				Title:       "Frontend Development",
				Skills:      []string{"React", "State Management", "API Integration"},
				Projects:    []string{"Weather App", "E-commerce Frontend"},
				Resources:   []string{"React Documentation", "YouTube Tutorials"},
				Checkpoints: []string{"Build React app", "Deploy to Vercel"},
			},
		},
		SkillGaps:                 []string{"Backend Development", "Database Design"},
		RecommendedCourses:        []string{"Full Stack Bootcamp", "Node.js Mastery"},
		InternshipRecommendations: []string{"Frontend Developer Intern", "Web Development Intern"},
		ReadinessScore:            45,
		NextSteps:                 []string{"Complete foundational courses", "Build portfolio projects"},
	}
}
