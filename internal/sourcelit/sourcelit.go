// Package sourcelit 从播放页内联脚本里的 JS 对象字面量中恢复视频源列表。
//
// 这不是 JS 解析器，而是一次固定步骤的“语法降级”：
//
//	player.source = { type: 'video', sources: [ {src: '...', type: '...', size: 720}, ] }
//
// 假设（不满足时解码阶段会失败，而不是被静默容忍）：
// - 字符串值只使用单引号
// - 对象只出现 src / type / size 三个键
// - sources 是一层扁平对象数组，不含嵌套的大括号或方括号
package sourcelit

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/John-Robertt/mdapi/internal/domain"
)

// Stage 标记修复流水线中的某一步，用于把失败归因到具体阶段。
type Stage string

const (
	StageLocate Stage = "locate"
	StageDecode Stage = "decode"
)

// ErrNotFound 表示脚本中不存在 player.source 赋值。
// 与“找到了但修复后仍不是合法 JSON”区分开：前者通常意味着页面结构变了或不是播放页。
var ErrNotFound = errors.New("未找到 player.source 赋值")

// Error 是修复解析失败时返回的错误（携带失败阶段）。
type Error struct {
	Stage Stage
	Body  string // 失败时正在处理的文本（locate 阶段为空）
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sourcelit stage=%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound 判断 err 是否表示“没有找到赋值”。
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// 数组体允许为空：`sources: []` 是合法的“零个源”，不是 ErrNotFound。
var assignRE = regexp.MustCompile(`(?s)player\.source\s*=\s*\{\s*type:\s*'video',\s*sources:\s*\[([^\]]*)\]`)

// ParseVideoSources 依次执行 定位 -> 引号规范化 -> 键加引号 -> 去尾逗号 -> 解码。
func ParseVideoSources(script string) ([]domain.VideoSource, error) {
	body, err := Locate(script)
	if err != nil {
		return nil, err
	}
	body = NormalizeQuotes(body)
	body = QuoteKeys(body)
	body = StripTrailingCommas(body)
	return Decode(body)
}

// Locate 在整段脚本中做一次正则搜索，返回 sources 数组的原始内容（不含方括号）。
func Locate(script string) (string, error) {
	m := assignRE.FindStringSubmatch(script)
	if m == nil {
		return "", &Error{Stage: StageLocate, Err: ErrNotFound}
	}
	return m[1], nil
}

// indent 是站点脚本固定使用的缩进宽度。
const indent = "        "

// NormalizeQuotes 把单引号换成双引号，去掉换行与固定宽度的缩进，并 trim。
func NormalizeQuotes(body string) string {
	body = strings.ReplaceAll(body, "'", `"`)
	body = strings.ReplaceAll(body, "\n", "")
	body = strings.ReplaceAll(body, indent, "")
	return strings.TrimSpace(body)
}

var knownKeys = map[string]struct{}{
	"src":  {},
	"type": {},
	"size": {},
}

// QuoteKeys 给裸键 src/type/size 加上双引号。
//
// 扫描时跟踪是否位于双引号字符串内部：字符串里的 "https:" 之类不会被误改。
// 其它裸键保持原样（随后解码会失败，这是有意暴露的限制）。
func QuoteKeys(body string) string {
	var b strings.Builder
	b.Grow(len(body) + 16)

	inString := false
	for i := 0; i < len(body); {
		c := body[i]
		if inString {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(body) {
				b.WriteByte(body[i+1])
				i += 2
				continue
			}
			if c == '"' {
				inString = false
			}
			i++
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			i++
			continue
		}
		if isIdentStart(c) {
			j := i
			for j < len(body) && isIdentPart(body[j]) {
				j++
			}
			word := body[i:j]
			k := j
			for k < len(body) && (body[k] == ' ' || body[k] == '\t') {
				k++
			}
			if _, ok := knownKeys[word]; ok && k < len(body) && body[k] == ':' {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// StripTrailingCommas 删除紧挨在 ] 或 } 之前（中间只有空白）的逗号，
// 再去掉整个数组体末尾残留的逗号。
func StripTrailingCommas(body string) string {
	var b strings.Builder
	b.Grow(len(body))

	inString := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(body) {
				i++
				b.WriteByte(body[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(body) && isSpace(body[j]) {
				j++
			}
			if j < len(body) && (body[j] == ']' || body[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return strings.TrimRight(strings.TrimSpace(b.String()), ",")
}

// Decode 把修复后的数组体包上方括号并按 JSON 解码。
func Decode(body string) ([]domain.VideoSource, error) {
	out := []domain.VideoSource{}
	if err := json.Unmarshal([]byte("["+body+"]"), &out); err != nil {
		return nil, &Error{Stage: StageDecode, Body: body, Err: err}
	}
	return out, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || (c >= '0' && c <= '9') }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
