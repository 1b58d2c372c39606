package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// VideoSource 是播放页脚本中声明的一个可播放源。
// 顺序只代表声明顺序，没有其它含义。
type VideoSource struct {
	Src  string `json:"src"`
	Type string `json:"type"`
	Size Size   `json:"size"`
}

// Size 是源的清晰度标签。站点有时写数字（720），有时写字符串（'HD'）；
// 这里保留原始形态，重新编码时数字仍输出为数字、字符串仍输出为字符串。
//
// Null 表示脚本里明确写了 size: null，重新编码时仍输出 null。
type Size struct {
	Text    string
	Numeric bool
	Null    bool
}

// NumberSize 构造数字形态的 Size。
func NumberSize(n int) Size { return Size{Text: strconv.Itoa(n), Numeric: true} }

// LabelSize 构造字符串形态的 Size。
func LabelSize(s string) Size { return Size{Text: s} }

func (s Size) String() string { return s.Text }

func (s Size) MarshalJSON() ([]byte, error) {
	if s.Null {
		return []byte("null"), nil
	}
	if s.Numeric {
		return []byte(s.Text), nil
	}
	return json.Marshal(s.Text)
}

func (s *Size) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = Size{Null: true}
		return nil
	case b[0] == '"':
		var t string
		if err := json.Unmarshal(b, &t); err != nil {
			return err
		}
		*s = Size{Text: t}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("size 必须是字符串或数字：%s", string(b))
		}
		*s = Size{Text: n.String(), Numeric: true}
		return nil
	}
}
