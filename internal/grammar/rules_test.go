package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/copycop/internal/model"
)

func TestDefault_LoadsSorted(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if table.Len() == 0 {
		t.Fatal("Expected embedded rules")
	}
	if table.Skipped() != 0 {
		t.Errorf("Expected no skipped records in embedded table, got %d", table.Skipped())
	}

	rules := table.Rules()
	for i := 1; i < len(rules); i++ {
		if rules[i].Weight > rules[i-1].Weight {
			t.Errorf("Rules not sorted at %d: %v > %v", i, rules[i].Weight, rules[i-1].Weight)
		}
	}
}

func TestLoadBytes_SkipsMalformed(t *testing.T) {
	data := []byte(`[
  {"clause": "NP", "subclauses": "DT NN", "prob": 0.2},
  {"clause": "NP", "subclauses": "NN", "prob": 0.5},
  {"clause": "", "subclauses": "DT NN", "prob": 0.5},
  {"clause": "VP", "subclauses": "VB NP", "prob": 1.5},
  {"clause": "VP", "subclauses": "VB np", "prob": 0.5},
  {"clause": "PP", "subclauses": "IN NP", "prob": "high"},
  {"clause": "PP", "subclauses": "IN NP", "prob": 0.8}
]`)

	table, err := LoadBytes(data, "test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if table.Len() != 2 {
		t.Errorf("Expected 2 usable rules, got %d", table.Len())
	}
	if table.Skipped() != 5 {
		t.Errorf("Expected 5 skipped rules, got %d", table.Skipped())
	}

	rules := table.Rules()
	if rules[0].Clause != "PP" {
		t.Errorf("Expected highest weight rule first, got %s", rules[0].Clause)
	}
}

func TestLoadBytes_YAML(t *testing.T) {
	data := []byte(`
- clause: NP
  subclauses: DT NN
  prob: 0.3
- clause: VP
  subclauses: VB NP
  prob: 0.3
`)

	table, err := LoadBytes(data, "yaml")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rules := table.Rules()
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}
	// Equal weights keep file order
	if rules[0].Clause != "NP" || rules[1].Clause != "VP" {
		t.Errorf("Expected file order on ties, got %s, %s", rules[0].Clause, rules[1].Clause)
	}
}

func TestLoadBytes_Unparseable(t *testing.T) {
	_, err := LoadBytes([]byte(`{not: [valid`), "broken")
	if err == nil {
		t.Error("Expected error for unparseable table")
	}
}

func TestLoadBytes_NoUsableRules(t *testing.T) {
	_, err := LoadBytes([]byte(`[{"clause": "NP", "subclauses": "NN", "prob": 0.5}]`), "empty")
	if err == nil {
		t.Error("Expected error when every record is malformed")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `[{"clause": "NP", "subclauses": "DT NN", "prob": 0.2}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if table.Source() != path {
		t.Errorf("Expected source %s, got %s", path, table.Source())
	}
}

func TestRuleTable_Digest(t *testing.T) {
	base := `[{"clause": "NP", "subclauses": "DT NN", "prob": 0.2}]`

	tests := []struct {
		content string
		same    bool
		desc    string
	}{
		{base, true, "identical rules"},
		{`- {clause: NP, subclauses: DT NN, prob: 0.2}`, true, "same rules as YAML"},
		{`[{"clause": "NP", "subclauses": "DT NN", "prob": 0.3}]`, false, "changed weight"},
		{`[{"clause": "NP", "subclauses": "DT NNS", "prob": 0.2}]`, false, "changed pattern"},
		{`[{"clause": "NP", "subclauses": "DT NN", "prob": 0.2}, {"clause": "VP", "subclauses": "VB NP", "prob": 0.1}]`, false, "added rule"},
	}

	want, err := LoadBytes([]byte(base), "a.json")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, tt := range tests {
		table, err := LoadBytes([]byte(tt.content), "b.json")
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", tt.desc, err)
		}
		if got := table.Digest() == want.Digest(); got != tt.same {
			t.Errorf("%s: expected same digest %v, got %v", tt.desc, tt.same, got)
		}
	}
}

func TestValidateRule(t *testing.T) {
	tests := []struct {
		rule  model.GrammarRule
		valid bool
		desc  string
	}{
		{rule("NP", "DT NN", 0.5), true, "plain rule"},
		{rule("NP", "PRP$ NN", 1), true, "dollar tag, weight 1"},
		{rule("NP", "NN", 0.5), false, "single tag pattern"},
		{rule("NP", "DT NN", 0), false, "zero weight"},
		{rule("np", "DT NN", 0.5), false, "lowercase clause"},
	}

	for _, tt := range tests {
		err := validateRule(tt.rule)
		if tt.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", tt.desc, err)
		}
		if !tt.valid && !errors.Is(err, ErrMalformedRule) {
			t.Errorf("%s: expected ErrMalformedRule, got %v", tt.desc, err)
		}
	}
}

func TestParsePCFG(t *testing.T) {
	input := strings.Join([]string{
		"S -> NP VP [0.401]",
		"NP-2 -> DT NN [0.214]",
		"NP -> PRP [0.3]",
		"VP -> VB NP PP [0.05]",
		"garbage line",
		"",
		"PP -> IN NP [0.831]",
	}, "\n")

	rules, skipped, err := ParsePCFG(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(rules) != 4 {
		t.Fatalf("Expected 4 rules, got %d", len(rules))
	}
	if skipped != 2 {
		t.Errorf("Expected 2 skipped lines, got %d", skipped)
	}

	if rules[0].Clause != "PP" || rules[0].Weight != 0.831 {
		t.Errorf("Expected PP rule first, got %s %v", rules[0].Clause, rules[0].Weight)
	}

	for _, r := range rules {
		if r.Clause == "NP" && r.Pattern.String() != "DT NN" {
			t.Errorf("Expected numbered clause suffix stripped, got %s -> %s", r.Clause, r.Pattern.String())
		}
	}
}
