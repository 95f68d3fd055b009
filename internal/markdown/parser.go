// Package markdown extracts problem fields from a loosely formatted markdown
// problem statement. Headings may be written in Chinese or English.
package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"probimport/internal/config"
	"probimport/internal/domain"
)

// Field limits, in characters.
const (
	maxTitle    = 200
	maxDesc     = 5000
	maxFormat   = 2000
	maxHint     = 2000
	maxSample   = 1000
	maxTestCase = 1000

	defaultTimeLimitMs   = 1000
	defaultMemoryLimitMb = 128
	minTimeLimitMs       = 100
	maxTimeLimitMs       = 10000
	minMemoryLimitMb     = 32
	maxMemoryLimitMb     = 1024

	// DefaultMaxTextBytes bounds the accepted document size.
	DefaultMaxTextBytes = 100000

	untitled          = "未命名题目"
	defaultDifficulty = "简单"
)

const fence = "```(?:cpp|c\\+\\+|c|text)?\\s*\\n(.*?)\\n```"

var (
	titleRe = regexp.MustCompile(`(?m)^#[ \t]*([^#\s].*)$`)

	descHeadings   = headings(`题目描述|问题描述`, `Description`)
	inputHeadings  = headings(`输入格式|输入`, `Input`)
	outputHeadings = headings(`输出格式|输出`, `Output`)
	hintHeadings   = headings(`提示|说明|注意`, `Hint|Note`)

	sampleInputRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)##\s*(?:样例输入|示例输入)\s*\n` + fence),
		regexp.MustCompile(`(?is)##\s*Sample Input\s*\n` + fence),
		regexp.MustCompile(`(?is)###\s*输入\s*#\d+\s*\n` + fence),
		regexp.MustCompile(`(?is)样例输入[：:]\s*\n` + fence),
		regexp.MustCompile(`(?is)输入[：:]\s*\n` + fence),
	}
	sampleOutputRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)##\s*(?:样例输出|示例输出)\s*\n` + fence),
		regexp.MustCompile(`(?is)##\s*Sample Output\s*\n` + fence),
		regexp.MustCompile(`(?is)###\s*输出\s*#\d+\s*\n` + fence),
		regexp.MustCompile(`(?is)样例输出[：:]\s*\n` + fence),
		regexp.MustCompile(`(?is)输出[：:]\s*\n` + fence),
	}

	timeLimitRe   = regexp.MustCompile(`(?i)(?:时间限制|Time Limit)[：:]\s*(\d+)\s*(ms|毫秒|秒)`)
	memoryLimitRe = regexp.MustCompile(`(?i)(?:内存限制|Memory Limit)[：:]\s*(\d+)\s*(?:MB|兆)`)
	difficultyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:难度|Difficulty)[：:]\s*(简单|中等|困难|Easy|Medium|Hard)`),
		regexp.MustCompile(`(?i)(?:级别|Level)[：:]\s*(简单|中等|困难|Easy|Medium|Hard)`),
	}

	numberedBlockRe = regexp.MustCompile(`(?s)###\s*(?:输入|输出)\s*#\d+\s*\n` + fence)
	codeBlockRe     = regexp.MustCompile(`(?s)` + fence)
)

var difficultyLabels = map[string]string{
	"easy":   "简单",
	"medium": "中等",
	"hard":   "困难",
}

// headings compiles the section heading patterns, tried in order. "##" also
// matches inside "###", so one pattern per alternation covers both levels.
func headings(alternations ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(alternations))
	for i, alt := range alternations {
		out[i] = regexp.MustCompile(`(?i)##\s*(?:` + alt + `)\s*\n`)
	}
	return out
}

// Parser turns markdown problem statements into the parse endpoint payload.
type Parser struct {
	maxBytes int
}

// NewParser creates a Parser. A non-positive limit takes DefaultMaxTextBytes.
func NewParser(cfg config.ParseConfig) *Parser {
	maxBytes := cfg.MaxTextBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextBytes
	}
	return &Parser{maxBytes: maxBytes}
}

// Parse extracts every field it can find. Absent fields keep their defaults;
// only blank or oversized input fails.
func (p *Parser) Parse(text string) (*domain.DocumentPayload, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}
	if len(text) > p.maxBytes {
		return nil, domain.ErrTextTooLong
	}

	out := &domain.DocumentPayload{
		Title:        untitled,
		Description:  clip(section(text, descHeadings), maxDesc),
		InputFormat:  clip(section(text, inputHeadings), maxFormat),
		OutputFormat: clip(section(text, outputHeadings), maxFormat),
		Hint:         clip(section(text, hintHeadings), maxHint),
		TimeLimit:    clamp(timeLimit(text), minTimeLimitMs, maxTimeLimitMs),
		MemoryLimit:  clamp(memoryLimit(text), minMemoryLimitMb, maxMemoryLimitMb),
		Difficulty:   difficulty(text),
	}
	if m := titleRe.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			out.Title = clip(t, maxTitle)
		}
	}

	sampleIn := firstBlock(text, sampleInputRes)
	sampleOut := firstBlock(text, sampleOutputRes)

	cases := pairBlocks(numberedBlockRe.FindAllStringSubmatch(text, -1))
	if len(cases) == 0 {
		cases = pairBlocks(codeBlockRe.FindAllStringSubmatch(text, -1))
	}
	if len(cases) == 0 && sampleIn != "" && sampleOut != "" {
		cases = []domain.SamplePair{{Input: sampleIn, Output: sampleOut}}
	}
	if cases == nil {
		cases = []domain.SamplePair{}
	}
	for i := range cases {
		cases[i].Input = clip(cases[i].Input, maxTestCase)
		cases[i].Output = clip(cases[i].Output, maxTestCase)
	}

	out.SampleInput = clip(sampleIn, maxSample)
	out.SampleOutput = clip(sampleOut, maxSample)
	out.TestCases = cases
	return out, nil
}

// section returns the body under the first heading matched by res, up to the
// next "##" or the end of the text.
func section(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		body := text[loc[1]:]
		if end := strings.Index(body, "##"); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body)
	}
	return ""
}

func firstBlock(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// pairBlocks pairs consecutive code blocks as input/output. A trailing odd
// block is ignored, as is any pair with a blank side.
func pairBlocks(matches [][]string) []domain.SamplePair {
	if len(matches) < 2 {
		return nil
	}
	var out []domain.SamplePair
	for i := 0; i+1 < len(matches); i += 2 {
		in := strings.TrimSpace(matches[i][1])
		o := strings.TrimSpace(matches[i+1][1])
		if in != "" && o != "" {
			out = append(out, domain.SamplePair{Input: in, Output: o})
		}
	}
	return out
}

func timeLimit(text string) int {
	m := timeLimitRe.FindStringSubmatch(text)
	if m == nil {
		return defaultTimeLimitMs
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultTimeLimitMs
	}
	if m[2] == "秒" {
		n *= 1000
	}
	return n
}

func memoryLimit(text string) int {
	m := memoryLimitRe.FindStringSubmatch(text)
	if m == nil {
		return defaultMemoryLimitMb
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultMemoryLimitMb
	}
	return n
}

func difficulty(text string) string {
	for _, re := range difficultyRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if zh, ok := difficultyLabels[strings.ToLower(m[1])]; ok {
			return zh
		}
		return m[1]
	}
	return defaultDifficulty
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// clip trims s and cuts it to at most n runes.
func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
