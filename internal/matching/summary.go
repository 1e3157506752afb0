package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-matcher/internal/types"
)

// maxSkillsInSummary bounds how many skill names a summary spells out.
const maxSkillsInSummary = 4

// buildSummary creates a short templated description of a match from its
// matched/missing skill lists and score. Generated locally; no external
// call is involved.
func buildSummary(result *types.MatchResult) string {
	var parts []string

	switch {
	case result.Score >= 80:
		parts = append(parts, "Strong match")
	case result.Score >= 60:
		parts = append(parts, "Good match")
	default:
		parts = append(parts, "Possible match")
	}

	if len(result.MatchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d required skills covered (%s)",
			len(result.MatchedSkills),
			len(result.MatchedSkills)+len(result.MissingSkills),
			joinSkills(result.MatchedSkills)))
	} else if len(result.MissingSkills) > 0 {
		parts = append(parts, "No required skills covered")
	}

	if len(result.MissingSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Missing: %s", joinSkills(result.MissingSkills)))
	}

	if result.Similarity != nil {
		parts = append(parts, fmt.Sprintf("Semantic similarity %.0f%%", *result.Similarity*100))
	}

	return strings.Join(parts, ". ")
}

// joinSkills renders a skill list, truncating long lists.
func joinSkills(skillNames []string) string {
	if len(skillNames) <= maxSkillsInSummary {
		return strings.Join(skillNames, ", ")
	}
	shown := strings.Join(skillNames[:maxSkillsInSummary], ", ")
	return fmt.Sprintf("%s and %d more", shown, len(skillNames)-maxSkillsInSummary)
}

// ProfileText builds the text blob embedded for a candidate profile.
func ProfileText(profile *types.CandidateProfile) string {
	var sb strings.Builder
	if len(profile.Skills) > 0 {
		sb.WriteString("Skills: ")
		sb.WriteString(strings.Join(profile.Skills, ", "))
		sb.WriteString(". ")
	}
	sb.WriteString(fmt.Sprintf("%.0f years experience", profile.YearsExperience))
	return sb.String()
}

// PostingText builds the text blob embedded for a posting.
func PostingText(posting *types.JobPosting) string {
	var sb strings.Builder
	sb.WriteString(posting.RoleTitle)
	if posting.Company != "" {
		sb.WriteString(" at ")
		sb.WriteString(posting.Company)
	}
	if len(posting.RequiredSkills) > 0 {
		sb.WriteString(". Required: ")
		sb.WriteString(strings.Join(posting.RequiredSkills, ", "))
	}
	if len(posting.PreferredSkills) > 0 {
		sb.WriteString(". Preferred: ")
		sb.WriteString(strings.Join(posting.PreferredSkills, ", "))
	}
	return sb.String()
}
