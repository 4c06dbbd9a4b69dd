package validate

import (
	"strings"
	"testing"
)

func scanString(t *testing.T, content string) []string {
	t.Helper()
	result, err := NewLeakScanner().Scan("fixture.md", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return result.Errors
}

func TestLeakScanner_CleanContent(t *testing.T) {
	errors := scanString(t, "Contact the office at info@example.com or +1-555-0100.\nSee https://example.gov/services for details.\n")
	if len(errors) != 0 {
		t.Errorf("Expected clean scan, got %v", errors)
	}
}

func TestLeakScanner_RealDomains(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Visit https://service.berlin.de/dienstleistung", "Real Berlin domain"},
		{"See https://www.bamf.bund.de for forms", "Real German federal domain"},
		{"Apply at https://travel.state.gov and wait", "Real government domain"},
		{"District office: ba-mitte.berlin.de", "Real Berlin district domain"},
	}
	for _, tt := range tests {
		errors := scanString(t, tt.line)
		if len(errors) == 0 {
			t.Errorf("Expected leak in %q", tt.line)
			continue
		}
		if !strings.Contains(strings.Join(errors, "\n"), tt.want) {
			t.Errorf("Expected %q for %q, got %v", tt.want, tt.line, errors)
		}
	}
}

func TestLeakScanner_GovPathAllowed(t *testing.T) {
	errors := scanString(t, "The value gov/ is a path prefix, nothing more.")
	if len(errors) != 0 {
		t.Errorf("Expected .gov followed by slash to pass, got %v", errors)
	}
}

func TestLeakScanner_PhoneNumbers(t *testing.T) {
	tests := []string{
		"Call +49 30 1234567 for an appointment",
		"Phone: (030) 1234567",
		"Hotline 030-123456",
	}
	for _, line := range tests {
		if errors := scanString(t, line); len(errors) == 0 {
			t.Errorf("Expected phone leak in %q", line)
		}
	}
}

func TestLeakScanner_EmailAddresses(t *testing.T) {
	if errors := scanString(t, "Write to buergeramt@mitte.de today"); len(errors) == 0 {
		t.Error("Expected email leak")
	}
	if errors := scanString(t, "Write to clerk@example.org today"); len(errors) != 0 {
		t.Errorf("Expected example email to pass, got %v", errors)
	}
}

func TestLeakScanner_DocumentationContextSkipped(t *testing.T) {
	errors := scanString(t, "# Blocked: service.berlin.de must never appear in fixtures\nDO NOT use real numbers like +49 30 1234567\n")
	if len(errors) != 0 {
		t.Errorf("Expected documentation lines to be skipped, got %v", errors)
	}
}

func TestLeakScanner_ReportsFileAndLine(t *testing.T) {
	errors := scanString(t, "clean line\nVisit service.berlin.de now\n")
	if len(errors) != 1 {
		t.Fatalf("Expected one leak, got %v", errors)
	}
	if !strings.HasPrefix(errors[0], "fixture.md:2: ") {
		t.Errorf("Expected file:line prefix, got %q", errors[0])
	}
}
