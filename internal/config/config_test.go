package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cwd := t.TempDir()

	eff, err := Load(cwd, "", nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Listen != DefaultListen || eff.BaseURL != DefaultBaseURL || eff.UserAgent != DefaultUserAgent {
		t.Fatalf("默认值不符合预期：%+v", eff)
	}
	if eff.Timeout != DefaultTimeout*time.Second {
		t.Fatalf("期望默认超时 %ds，实际 %v", DefaultTimeout, eff.Timeout)
	}
	if eff.LogLevel != "info" {
		t.Fatalf("期望 log level=info，实际 %q", eff.LogLevel)
	}
	if eff.File != "" {
		t.Fatalf("未读取文件时 File 应为空，实际 %q", eff.File)
	}
}

func TestLoad_ExplicitConfigNotFound(t *testing.T) {
	cwd := t.TempDir()

	_, err := Load(cwd, "missing.json", nil)
	if Code(err) != ErrCodeNotFound {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeNotFound, err, Code(err))
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, FileName), []byte(`{"listen":`))

	_, err := Load(cwd, "", nil)
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, FileName), []byte(`{"base_url":"ftp://moviedrive.hu"}`))

	_, err := Load(cwd, "", nil)
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, FileName), []byte(`{"log":{"level":"chatty"}}`))

	_, err := Load(cwd, "", nil)
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", ErrCodeInvalid, err, Code(err))
	}
}

func TestLoad_MergeOrder(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, FileName), []byte(`{
		"listen": "0.0.0.0:8080",
		"base_url": "https://file.example.test/",
		"proxy": {"url": "http://file-proxy:3128"},
		"timeout": 500
	}`))

	// env 覆盖文件。
	t.Setenv("MDAPI_BASE_URL", "https://env.example.test")
	t.Setenv("MDAPI_PROXY_URL", "http://env-proxy:3128")

	// CLI 覆盖 env。
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--proxy", "http://cli-proxy:3128"}); err != nil {
		t.Fatalf("解析参数失败：%v", err)
	}

	eff, err := Load(cwd, "", fs)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Listen != "0.0.0.0:8080" {
		t.Fatalf("期望 listen 来自文件，实际 %q", eff.Listen)
	}
	if eff.BaseURL != "https://env.example.test" {
		t.Fatalf("期望 base_url 来自 env，实际 %q", eff.BaseURL)
	}
	if eff.ProxyURL != "http://cli-proxy:3128" {
		t.Fatalf("期望 proxy 来自 CLI，实际 %q", eff.ProxyURL)
	}
	// 超出范围截断到 120 秒。
	if eff.Timeout != 120*time.Second {
		t.Fatalf("期望 timeout 截断为 120s，实际 %v", eff.Timeout)
	}
	if eff.File != filepath.Join(cwd, FileName) {
		t.Fatalf("期望记录读取的文件路径，实际 %q", eff.File)
	}
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, "custom.json"), []byte(`{"log":{"level":"debug"},"user_agent":"file-ua"}`))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("解析参数失败：%v", err)
	}

	eff, err := Load(cwd, "custom.json", fs)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.LogLevel != "debug" {
		t.Fatalf("期望 log level=debug，实际 %q", eff.LogLevel)
	}
	if eff.UserAgent != "file-ua" {
		t.Fatalf("期望 user_agent=file-ua，实际 %q", eff.UserAgent)
	}
	if eff.BaseURL != DefaultBaseURL {
		t.Fatalf("期望 base_url 使用默认值，实际 %q", eff.BaseURL)
	}
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir 失败：%v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("写入失败：%v", err)
	}
}
