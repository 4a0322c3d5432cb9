package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/vibrant/internal/colour"
)

// Format is a palette output format.
type Format string

const (
	// FormatText renders a table, one row per role.
	FormatText Format = "text"
	// FormatHex prints "Role #rrggbb" lines.
	FormatHex Format = "hex"
	// FormatJSON prints the palette as JSON.
	FormatJSON Format = "json"
	// FormatCSS prints CSS custom properties.
	FormatCSS Format = "css"
)

// ValidFormats returns the supported output formats.
func ValidFormats() []Format {
	return []Format{FormatText, FormatHex, FormatJSON, FormatCSS}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats() {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (supported: %v)", s, ValidFormats())
}

// FormatPalette renders p in the given format. Preview adds ANSI colour
// blocks to the text and hex formats.
func FormatPalette(p *colour.Palette, format Format, preview bool) (string, error) {
	switch format {
	case FormatText:
		return formatText(p, preview), nil
	case FormatHex:
		return formatHex(p, preview), nil
	case FormatJSON:
		jsonBytes, err := p.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case FormatCSS:
		return formatCSS(p), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %v)", format, ValidFormats())
	}
}

func formatText(p *colour.Palette, preview bool) string {
	headers := []string{"Role", "Hex", "RGB", "HSL", "Population", "Title", "Body"}
	if preview {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	table.AlignRight(len(headers) - 3)

	for role, s := range p.All() {
		if s == nil {
			row := []string{string(role), "-"}
			if preview {
				row = append([]string{strings.Repeat(" ", previewWidth)}, row...)
			}
			table.AddRow(row)
			continue
		}
		row := []string{
			string(role),
			s.Hex(),
			s.RGB().String(),
			s.HSL().String(),
			fmt.Sprintf("%d", s.Population()),
			s.TitleTextColor().Hex(),
			s.BodyTextColor().Hex(),
		}
		if preview {
			row = append([]string{colour.SwatchPreview(s, "Aa", previewWidth)}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}

const previewWidth = 6

func formatHex(p *colour.Palette, preview bool) string {
	var sb strings.Builder
	for role, s := range p.All() {
		hex := "-"
		if s != nil {
			hex = s.Hex()
		}
		if preview && s != nil {
			fmt.Fprintf(&sb, "%s %-12s %s\n", colour.ColourPreview(s.RGB(), previewWidth), role, hex)
			continue
		}
		fmt.Fprintf(&sb, "%-12s %s\n", role, hex)
	}
	return sb.String()
}

// cssName converts a role to a kebab-case property name.
func cssName(role colour.Role) string {
	var sb strings.Builder
	for i, r := range string(role) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func formatCSS(p *colour.Palette) string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for role, s := range p.All() {
		if s == nil {
			continue
		}
		name := cssName(role)
		fmt.Fprintf(&sb, "  --%s: %s;\n", name, s.Hex())
		fmt.Fprintf(&sb, "  --%s-title-text: %s;\n", name, s.TitleTextColor().Hex())
		fmt.Fprintf(&sb, "  --%s-body-text: %s;\n", name, s.BodyTextColor().Hex())
	}
	sb.WriteString("}\n")
	return sb.String()
}
