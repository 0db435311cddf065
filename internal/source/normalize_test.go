package source

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{"plain", "component a() {}", "component a() {}", 0},
		{"crlf", "a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", "a\rb", "a\rb", 0},
		{"bom", "\xEF\xBB\xBFx\n", "x\n", FileHadBOM},
		// "e" + combining acute stays decomposed
		{"decomposed kept", "\xEF\xBB\xBF\"e\xCC\x81\"\r\n", "\"e\xCC\x81\"\n", FileHadBOM | FileNormalizedCRLF | FileNotNFC},
		{"composed", "\"\u00e9\"", "\"\u00e9\"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize([]byte(tt.in))
			if string(got) != tt.want || flags != tt.flags {
				t.Errorf("Normalize(%q) = %q, %b; want %q, %b", tt.in, got, flags, tt.want, tt.flags)
			}
		})
	}
}
