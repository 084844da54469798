package project

import "strings"

// Template file names inside the templates directory.
const (
	PersonTemplateFile  = "person.md"
	CompanyTemplateFile = "company.md"
	JobTemplateFile     = "job.md"
)

// Placeholder tokens substituted when an entity is created.
const (
	PlaceholderName     = "[Name]"
	PlaceholderCompany  = "[Company Name]"
	PlaceholderJobTitle = "[Job Title]"
)

const defaultPersonTemplate = `# [Name]

## Contact
- Email:
- Phone:
- Location:
- LinkedIn:
- GitHub:

## Summary
A few sentences describing who you are professionally and what you are looking for.

## Experience

### Job Title - Company (Start - End)
- What you owned, built, or led
- Measurable impact (numbers, scale, outcomes)
- Technologies and methods used

## Projects

### Project Name
- What it does and your role
- Notable results

## Skills
- Languages:
- Frameworks:
- Tools:

## Education

### Degree - Institution (Year)

## Certifications

## Notes
Anything else a resume builder should know: preferences, constraints, stories worth telling.
`

const defaultCompanyTemplate = `# [Company Name]

## Overview
What the company does, its size, stage, and market.

## Mission and Values
-

## Culture
How the company describes the way it works.

## Tech Stack
-

## Products
-

## Notes
Research notes, contacts, interview impressions.
`

const defaultJobTemplate = `# [Job Title]

**Company:** [Company Name]
**Location:**
**Type:**
**URL:**

## Description
Paste the job description here.

## Responsibilities
-

## Requirements
-

## Nice to Have
-

## Notes
`

// defaultTemplates maps template file names to their built-in content.
var defaultTemplates = map[string]string{
	PersonTemplateFile:  defaultPersonTemplate,
	CompanyTemplateFile: defaultCompanyTemplate,
	JobTemplateFile:     defaultJobTemplate,
}

// templateOrder fixes the order templates are written by Init.
var templateOrder = []string{PersonTemplateFile, CompanyTemplateFile, JobTemplateFile}

// fillTemplate replaces placeholder tokens in a single pass. pairs alternate
// placeholder and value, as in strings.NewReplacer.
func fillTemplate(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}
