// Package theme は、ヒートマップの配色テーマを管理します。
package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stsysd/kusagen/model"
)

// Theme はヒートマップの配色一式です。
type Theme struct {
	Background     string   `yaml:"background"`      // 背景色
	Text           string   `yaml:"text"`            // タイトル・凡例の文字色
	Colors         []string `yaml:"colors"`          // 通常アクティビティのパレット（レベル0..N-1）
	ReactionColors []string `yaml:"reaction_colors"` // リアクション限定日のパレット
}

// Validate はテーマの整合性を検証します。
// 1色だけのパレットでは強度を表現できないため、2色以上を要求します。
func (t *Theme) Validate() error {
	if t.Background == "" {
		return model.NewValidationError("theme background is required")
	}
	if t.Text == "" {
		return model.NewValidationError("theme text color is required")
	}
	if len(t.Colors) < 2 {
		return model.NewValidationError("theme palette must contain at least 2 colors")
	}
	if len(t.ReactionColors) < 2 {
		return model.NewValidationError("theme reaction palette must contain at least 2 colors")
	}
	return nil
}

// builtins は組み込みテーマです。
var builtins = map[string]*Theme{
	"light": {
		Background:     "#ffffff",
		Text:           "#57606a",
		Colors:         []string{"#ebedf0", "#ffe2b3", "#ffc266", "#ff9d00", "#ff7a00"},
		ReactionColors: []string{"#ebedf0", "#ffd6d6", "#ffb3b3", "#ff7a7a", "#ff4d4d"},
	},
	"github-dark": {
		Background:     "#0d1117",
		Text:           "#8b949e",
		Colors:         []string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
		ReactionColors: []string{"#161b22", "#3b1d1f", "#5b1e23", "#8b1d26", "#f85149"},
	},
}

// Table はテーマ名からテーマへの対応表です。
type Table map[string]*Theme

// Builtin は組み込みテーマだけの対応表を返します。
func Builtin() Table {
	table := make(Table, len(builtins))
	for name, t := range builtins {
		table[name] = t
	}
	return table
}

// LoadFile はYAMLファイルのテーマ定義を組み込みテーマに重ねた対応表を返します。
// 同名のテーマはファイル側が優先されます。
func LoadFile(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var loaded map[string]*Theme
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("parse theme file %s: %w", path, err)
	}

	table := Builtin()
	for name, t := range loaded {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
		table[name] = t
	}
	return table, nil
}

// Get は指定された名前のテーマを返します。
func (t Table) Get(name string) (*Theme, error) {
	th, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrThemeNotFound, name)
	}
	return th, nil
}
