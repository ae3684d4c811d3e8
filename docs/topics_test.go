package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/performance"
	"github.com/etnz/performance/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ledgerBlock is the info string of fenced code blocks holding a ledger.
const ledgerBlock = "jsonl"

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}

	content, err := GetTopics(All)
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		own, _ := GetTopic(topic)
		if !strings.Contains(content, own) {
			t.Errorf("GetTopics(*) is missing topic %q", topic)
		}
	}
	if _, err := GetTopic("unknown"); err == nil {
		t.Error("GetTopic(unknown) expected an error")
	}
}

// TestLedgerExamples decodes every ledger example of the manual, and checks
// the figures the manual quotes for them.
func TestLedgerExamples(t *testing.T) {
	year2011 := date.Range{From: date.New(2010, time.December, 31), To: date.New(2011, time.December, 31)}
	quoted := map[string]struct {
		category performance.CategoryType
		want     int64
	}{
		"performance.md": {performance.AbsolutePerformance, 50_00},
		"gains.md":       {performance.CapitalGains, 111_00},
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, b := range parseLedgerBlocks(t, file) {
				ledger, err := performance.DecodeLedger(strings.NewReader(b.content))
				if err != nil {
					t.Fatalf("%s:%d: invalid ledger: %v", file, b.line, err)
				}
				if err := ledger.Validate(); err != nil {
					t.Fatalf("%s:%d: invalid ledger: %v", file, b.line, err)
				}
				q, ok := quoted[file]
				if !ok {
					continue
				}
				cp, err := performance.NewClientPerformance(ledger, performance.IdentityConverter("EUR"), year2011)
				if err != nil {
					t.Fatalf("%s:%d: %v", file, b.line, err)
				}
				if got := cp.Valuation(q.category); got.Amount() != q.want {
					t.Errorf("%s:%d: %s = %v, the manual says %d", file, b.line, q.category, got, q.want)
				}
			}
		})
	}
}

type block struct {
	content string
	line    int
}

// parseLedgerBlocks returns the fenced ledger blocks of a markdown file.
func parseLedgerBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	var blocks []block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil || string(fcb.Info.Segment.Value(source)) != ledgerBlock {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(source))
		}
		blocks = append(blocks, block{
			content: b.String(),
			line:    strings.Count(string(source[:fcb.Info.Segment.Start]), "\n") + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}
