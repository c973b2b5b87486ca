package api

import (
	"strings"
	"unicode/utf8"
)

// assetKeyPrefixes 是本服务会签发的对象键前缀，预签名只对这些前缀开放。
var assetKeyPrefixes = []string{
	"template-thumbnails/",
	"technology-icons/",
}

// isValidAssetObjectKey 校验对象键格式。
// 上传侧生成的键一律是 <前缀>/<uuid>.png，这里按同样的形状收紧。
func isValidAssetObjectKey(key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	if len(key) > 200 {
		return false
	}
	hasPrefix := false
	for _, prefix := range assetKeyPrefixes {
		if strings.HasPrefix(key, prefix) {
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(key), ".png")
}
