package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter represents YAML frontmatter
type frontmatter struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Date        string     `yaml:"date"`
	Modified    string     `yaml:"modified"`
	Template    string     `yaml:"template"`
	Draft       bool       `yaml:"draft"`
	Slug        string     `yaml:"slug"`
	Lang        string     `yaml:"lang"`
	Category    string     `yaml:"category"`
	Author      string     `yaml:"author"`
	Tags        stringList `yaml:"tags"`
}

// stringList accepts either a YAML sequence or a comma separated string
type stringList []string

// UnmarshalYAML accepts a comma separated scalar or a sequence
func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var items []string
		for _, s := range strings.Split(value.Value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}
		*l = items
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a comma separated string", value.Line)
	}
}

// splitFrontmatter separates frontmatter from content. ok is false when the
// content has no frontmatter block.
func splitFrontmatter(content []byte) (fm frontmatter, body []byte, ok bool, err error) {
	str := string(content)
	if !strings.HasPrefix(str, "---\n") {
		return fm, content, false, nil
	}

	rest := str[4:]
	endIndex := strings.Index(rest, "\n---\n")
	var frontmatterStr, remaining string

	if endIndex != -1 {
		frontmatterStr = rest[:endIndex]
		remaining = rest[endIndex+5:]
	} else if strings.HasSuffix(rest, "\n---") {
		frontmatterStr = rest[:len(rest)-4]
		remaining = ""
	} else {
		return fm, content, false, nil
	}

	if err := yaml.Unmarshal([]byte(frontmatterStr), &fm); err != nil {
		return fm, nil, false, fmt.Errorf("invalid YAML: %w", err)
	}

	return fm, []byte(remaining), true, nil
}
