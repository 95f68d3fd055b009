package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probimport/internal/config"
	"probimport/internal/domain"
	"probimport/internal/markdown"
)

const chineseDoc = "# 两数之和\n\n" +
	"难度：中等\n时间限制：2秒\n内存限制：256MB\n\n" +
	"## 题目描述\n给定两个整数，输出它们的和。\n\n" +
	"## 输入格式\n一行两个整数 a b。\n\n" +
	"## 输出格式\n一个整数。\n\n" +
	"### 输入 #1\n```\n1 2\n```\n" +
	"### 输出 #1\n```\n3\n```\n" +
	"### 输入 #2\n```text\n10 20\n```\n" +
	"### 输出 #2\n```\n30\n```\n\n" +
	"## 提示\n注意溢出。\n"

func newParser() *markdown.Parser {
	return markdown.NewParser(config.ParseConfig{})
}

func TestParse_ChineseDocument(t *testing.T) {
	p, err := newParser().Parse(chineseDoc)

	require.NoError(t, err)
	assert.Equal(t, "两数之和", p.Title)
	assert.Equal(t, "中等", p.Difficulty)
	assert.Equal(t, 2000, p.TimeLimit)
	assert.Equal(t, 256, p.MemoryLimit)
	assert.Equal(t, "给定两个整数，输出它们的和。", p.Description)
	assert.Equal(t, "一行两个整数 a b。", p.InputFormat)
	assert.Equal(t, "一个整数。", p.OutputFormat)
	assert.Equal(t, "注意溢出。", p.Hint)
	assert.Equal(t, "1 2", p.SampleInput)
	assert.Equal(t, "3", p.SampleOutput)
	assert.Equal(t, []domain.SamplePair{{Input: "1 2", Output: "3"}, {Input: "10 20", Output: "30"}}, p.TestCases)
}

func TestParse_EnglishDocument(t *testing.T) {
	doc := "# A Plus B\n" +
		"Difficulty: Hard\nTime Limit: 500ms\nMemory Limit: 64 mb\n" +
		"## Description\nSum two numbers.\n" +
		"## Input\nTwo ints.\n" +
		"## Output\nOne int.\n" +
		"## Sample Input\n```cpp\n4 5\n```\n" +
		"## Sample Output\n```\n9\n```\n" +
		"## Note\nNone.\n"

	p, err := newParser().Parse(doc)

	require.NoError(t, err)
	assert.Equal(t, "A Plus B", p.Title)
	assert.Equal(t, "困难", p.Difficulty)
	assert.Equal(t, 500, p.TimeLimit)
	assert.Equal(t, 64, p.MemoryLimit)
	assert.Equal(t, "Sum two numbers.", p.Description)
	assert.Equal(t, "Two ints.", p.InputFormat)
	assert.Equal(t, "One int.", p.OutputFormat)
	assert.Equal(t, "None.", p.Hint)
	assert.Equal(t, "4 5", p.SampleInput)
	assert.Equal(t, "9", p.SampleOutput)
	assert.Equal(t, []domain.SamplePair{{Input: "4 5", Output: "9"}}, p.TestCases)
}

func TestParse_Defaults(t *testing.T) {
	p, err := newParser().Parse("just some words")

	require.NoError(t, err)
	assert.Equal(t, "未命名题目", p.Title)
	assert.Equal(t, "简单", p.Difficulty)
	assert.Equal(t, 1000, p.TimeLimit)
	assert.Equal(t, 128, p.MemoryLimit)
	assert.Empty(t, p.Description)
	assert.Empty(t, p.TestCases)
}

func TestParse_ClampsLimits(t *testing.T) {
	p, err := newParser().Parse("# T\n时间限制：20秒\n内存限制：4096MB\n")
	require.NoError(t, err)
	assert.Equal(t, 10000, p.TimeLimit)
	assert.Equal(t, 1024, p.MemoryLimit)

	p, err = newParser().Parse("# T\nTime Limit: 5ms\nMemory Limit: 1MB\n")
	require.NoError(t, err)
	assert.Equal(t, 100, p.TimeLimit)
	assert.Equal(t, 32, p.MemoryLimit)
}

func TestParse_GenericCodeBlocksPaired(t *testing.T) {
	doc := "# T\n```\na\n```\n```\nb\n```\n```\nc\n```\n"

	p, err := newParser().Parse(doc)

	require.NoError(t, err)
	assert.Equal(t, []domain.SamplePair{{Input: "a", Output: "b"}}, p.TestCases)
}

func TestParse_TruncatesLongFields(t *testing.T) {
	doc := "# " + strings.Repeat("标", 250) + "\n## 题目描述\n" + strings.Repeat("x", 6000) + "\n"

	p, err := newParser().Parse(doc)

	require.NoError(t, err)
	assert.Equal(t, 200, len([]rune(p.Title)))
	assert.Len(t, p.Description, 5000)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := newParser().Parse(" \n ")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestParse_TextTooLong(t *testing.T) {
	p := markdown.NewParser(config.ParseConfig{MaxTextBytes: 10})
	_, err := p.Parse("# much longer than ten bytes")
	assert.ErrorIs(t, err, domain.ErrTextTooLong)
}
