package records

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

// migration is one schema-migration step: rename a legacy column to its
// current name. Renames apply in order, and only when the current column is
// absent; when both are present the current schema wins and the legacy value
// is ignored. Supporting another schema revision means appending a rule here.
type migration struct {
	legacy  string
	current string
}

// migrations lists every legacy column the learning file has carried, oldest
// first.
var migrations = []migration{
	{legacy: "skill", current: "core_skill"},
	{legacy: "learning_hrs", current: "time_spent_hrs"},
	{legacy: "usages", current: "applications"},
	{legacy: "profit_over_legacy_pct", current: "delta_performance_pct"},
}

// Normalizer turns raw learning rows into canonical records. CoreSkills is the
// externally configured category set; when empty the category check is
// disabled.
type Normalizer struct {
	coreSkills map[string]bool
}

// NewNormalizer creates a Normalizer with the given allowed core-skill
// categories. Pass nil to disable the category check.
func NewNormalizer(coreSkills []string) *Normalizer {
	n := &Normalizer{}
	if len(coreSkills) > 0 {
		n.coreSkills = make(map[string]bool, len(coreSkills))
		for _, s := range coreSkills {
			n.coreSkills[s] = true
		}
	}
	return n
}

// BatchResult partitions a batch normalization pass: rows that normalized
// cleanly, per-row errors for rows that did not, and soft warnings (unknown
// core-skill categories) that do not invalidate their record.
type BatchResult struct {
	Records  []types.LearningRecord `json:"records"`
	Errors   []*NormalizationError  `json:"errors,omitempty"`
	Warnings []*NormalizationError  `json:"warnings,omitempty"`
}

// Normalize converts one raw row into a canonical LearningRecord. It is a pure
// transformation: legacy columns are renamed, tags are parsed into a set,
// required fields are validated, and optional metrics absent from the row stay
// nil rather than defaulting to zero.
func (n *Normalizer) Normalize(row dataset.Row) (*types.LearningRecord, error) {
	fields := migrate(row)

	dateRaw, ok := fields["date"]
	if !ok {
		return nil, missingField(row.Line, "date")
	}
	date, err := types.ParseCalendarDate(dateRaw)
	if err != nil {
		return nil, unparseable(row.Line, "date", dateRaw, err)
	}

	coreSkill := fields["core_skill"]
	if coreSkill == "" {
		return nil, missingField(row.Line, "core_skill")
	}

	spentRaw, ok := fields["time_spent_hrs"]
	if !ok {
		return nil, missingField(row.Line, "time_spent_hrs")
	}
	timeSpent, err := parseNonNegative(row.Line, "time_spent_hrs", spentRaw)
	if err != nil {
		return nil, err
	}

	rec := &types.LearningRecord{
		Date:           date,
		CoreSkill:      coreSkill,
		SkillsTechTags: ParseTags(fields["skills_tech_tags"]),
		TimeSpentHrs:   timeSpent,
		Notes:          fields["notes"],
	}

	if raw, ok := fields["applied_hrs"]; ok {
		v, err := parseNonNegative(row.Line, "applied_hrs", raw)
		if err != nil {
			return nil, err
		}
		rec.AppliedHrs = &v
	}
	if raw, ok := fields["applications"]; ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, unparseable(row.Line, "applications", raw, err)
		}
		if v < 0 {
			return nil, negative(row.Line, "applications", float64(v))
		}
		rec.Applications = &v
	}
	if raw, ok := fields["delta_performance_pct"]; ok {
		// The only signed metric: performance can regress.
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, unparseable(row.Line, "delta_performance_pct", raw, err)
		}
		rec.DeltaPerformancePct = &v
	}
	if raw, ok := fields["time_saved_hrs"]; ok {
		v, err := parseNonNegative(row.Line, "time_saved_hrs", raw)
		if err != nil {
			return nil, err
		}
		rec.TimeSavedHrs = &v
	}
	if raw, ok := fields["cost_eur"]; ok {
		v, err := parseNonNegative(row.Line, "cost_eur", raw)
		if err != nil {
			return nil, err
		}
		rec.CostEUR = &v
	}

	return rec, nil
}

// CheckCategory reports an unknown core-skill category as a soft warning, or
// nil when the category set is not configured or the skill is known.
func (n *Normalizer) CheckCategory(line int, rec *types.LearningRecord) *NormalizationError {
	if n.coreSkills == nil || n.coreSkills[rec.CoreSkill] {
		return nil
	}
	return &NormalizationError{
		Line:    line,
		Field:   "core_skill",
		Kind:    KindUnknownSkillCategory,
		Message: fmt.Sprintf("%q is not a configured core skill", rec.CoreSkill),
	}
}

// NormalizeAll normalizes a batch of rows. Rows are independent: a failing row
// is reported and skipped, never aborting the rest of the batch. Record order
// follows input order.
func (n *Normalizer) NormalizeAll(rows []dataset.Row) *BatchResult {
	result := &BatchResult{}
	for _, row := range rows {
		rec, err := n.Normalize(row)
		if err != nil {
			var nerr *NormalizationError
			if e, ok := err.(*NormalizationError); ok {
				nerr = e
			} else {
				nerr = unparseable(row.Line, "", "", err)
			}
			result.Errors = append(result.Errors, nerr)
			continue
		}
		if warn := n.CheckCategory(row.Line, rec); warn != nil {
			result.Warnings = append(result.Warnings, warn)
		}
		result.Records = append(result.Records, *rec)
	}
	return result
}

// migrate applies the schema-migration renames to a raw row and returns the
// resulting field map. Values are trimmed; empty values count as absent. The
// rename is a pure key rename: the raw string value is untouched, so numeric
// values survive with no precision loss.
func migrate(row dataset.Row) map[string]string {
	fields := make(map[string]string, len(row.Fields))
	for name := range row.Fields {
		if v := row.Get(name); v != "" {
			fields[name] = v
		}
	}

	// skills_tech_tags may legitimately be an empty set; keep presence.
	if _, present := row.Fields["skills_tech_tags"]; present {
		if _, ok := fields["skills_tech_tags"]; !ok {
			fields["skills_tech_tags"] = ""
		}
	}

	for _, m := range migrations {
		legacyValue, hasLegacy := fields[m.legacy]
		if !hasLegacy {
			continue
		}
		delete(fields, m.legacy)
		if _, hasCurrent := fields[m.current]; hasCurrent {
			continue // current schema wins; legacy value is ignored noise
		}
		fields[m.current] = legacyValue
	}

	return fields
}

// ParseTags parses a comma-separated tag list into a sorted, deduplicated set
// of trimmed tags. An empty string yields an empty set. Parsing is idempotent:
// re-parsing a serialized set yields the same set.
func ParseTags(raw string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// JoinTags serializes a tag set back to its comma-separated CSV form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func parseNonNegative(line int, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, unparseable(line, field, raw, err)
	}
	if v < 0 {
		return 0, negative(line, field, v)
	}
	return v, nil
}
