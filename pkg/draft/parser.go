package draft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
	// <label>: <number><unit> with an optional (<percent>%) suffix
	nutritionRe = regexp.MustCompile(`^(.+?):\s*(\d+(?:\.\d+)?)\s*([A-Za-zµ"%]+)\s*(?:\((\d+(?:\.\d+)?)%\))?$`)
	headingRe   = regexp.MustCompile(`^#{1,6}\s*(.+?)\s*$`)
)

// Parse turns one raw document into a RecipeDraft. Structural problems
// (undecodable text, missing or invalid front matter) return a
// MalformedDraftError; everything semantic is left to the rule engine.
func Parse(path string, data []byte) (*RecipeDraft, error) {
	if !utf8.Valid(data) {
		return nil, &MalformedDraftError{Section: "document", Reason: "not valid UTF-8 text"}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	fmLines, bodyStart, err := extractFrontMatter(lines)
	if err != nil {
		return nil, err
	}

	meta, err := parseFrontMatter(fmLines)
	if err != nil {
		return nil, err
	}

	d := &RecipeDraft{
		Path:        path,
		Title:       meta["title"],
		Category:    meta["category"],
		Image:       meta["image"],
		Description: meta["description"],
		Metadata:    meta,
		Body:        strings.Join(lines[bodyStart:], "\n"),
	}

	parseBody(d, lines, bodyStart)
	return d, nil
}

// extractFrontMatter returns the raw front-matter lines and the index
// of the first body line. The metadata block is mandatory and must
// open the document.
func extractFrontMatter(lines []string) ([]string, int, error) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelim {
		return nil, 0, &MalformedDraftError{Section: "front matter", Reason: "document does not start with a metadata block"}
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelim {
			return lines[1:i], i + 1, nil
		}
	}
	return nil, 0, &MalformedDraftError{Section: "front matter", Reason: "metadata block is never closed"}
}

func parseFrontMatter(fmLines []string) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.Join(fmLines, "\n")), &raw); err != nil {
		return nil, &MalformedDraftError{Section: "front matter", Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	meta := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.ToLower(strings.TrimSpace(k))
		switch val := v.(type) {
		case nil:
			meta[key] = ""
		case string:
			meta[key] = strings.TrimSpace(val)
		case bool:
			meta[key] = strconv.FormatBool(val)
		case int:
			meta[key] = strconv.Itoa(val)
		case float64:
			meta[key] = strconv.FormatFloat(val, 'g', -1, 64)
		default:
			meta[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return meta, nil
}

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionIngredients
	sectionSteps
	sectionNutrition
	sectionOther
)

func classifyHeading(text string) sectionKind {
	h := strings.ToLower(text)
	switch {
	case strings.Contains(h, "ingredient"):
		return sectionIngredients
	case strings.Contains(h, "step"), strings.Contains(h, "preparation"):
		return sectionSteps
	case strings.Contains(h, "nutrition"):
		return sectionNutrition
	}
	return sectionOther
}

func parseBody(d *RecipeDraft, lines []string, bodyStart int) {
	current := sectionNone

	for i := bodyStart; i < len(lines); i++ {
		line := lines[i]
		if m := headingRe.FindStringSubmatch(line); m != nil {
			kind := classifyHeading(m[1])
			// Sub-headings of a nutrition section (e.g. a vitamins
			// block) stay in the nutrition section.
			if kind == sectionOther && current == sectionNutrition {
				continue
			}
			current = kind
			switch kind {
			case sectionIngredients:
				d.HasIngredients = true
			case sectionSteps:
				d.HasSteps = true
			case sectionNutrition:
				d.HasNutrition = true
			}
			continue
		}

		entry := strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
		if entry == "" {
			continue
		}

		switch current {
		case sectionIngredients:
			d.Ingredients = append(d.Ingredients, entry)
		case sectionSteps:
			d.Steps = append(d.Steps, entry)
		case sectionNutrition:
			if fact, ok := parseNutritionLine(entry); ok {
				d.Nutrition = append(d.Nutrition, fact)
			} else {
				d.BadNutritionLines = append(d.BadNutritionLines, BadLine{Line: i + 1, Content: entry})
			}
		}
	}
}

func parseNutritionLine(entry string) (NutritionFact, bool) {
	m := nutritionRe.FindStringSubmatch(entry)
	if m == nil {
		return NutritionFact{}, false
	}

	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return NutritionFact{}, false
	}

	fact := NutritionFact{
		Label: strings.TrimSpace(m[1]),
		Value: value,
		Unit:  m[3],
	}
	if m[4] != "" {
		pct, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return NutritionFact{}, false
		}
		fact.Percent = &pct
	}
	return fact, true
}
