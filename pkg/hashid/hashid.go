package hashid

import (
	"fmt"
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

// Type 一类对外暴露的HashID，带前缀和独立盐值
type Type struct {
	prefix string
	codec  *hashids.HashID
}

// NewType 创建HashID类型。prefix 为对外前缀（如 "or-"），salt 区分不同对象类型
func NewType(prefix, salt string, minLength int) *Type {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength

	codec, err := hashids.NewWithData(data)
	if err != nil {
		panic("invalid hashid config for " + salt + ": " + err.Error())
	}

	return &Type{prefix: prefix, codec: codec}
}

// Encode 编码数据库ID为HashID
func Encode(t *Type, id uint) string {
	encoded, err := t.codec.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return ""
	}
	return t.prefix + encoded
}

// Decode 解码HashID获取数据库ID
func Decode(t *Type, hashID string) (uint, error) {
	if !strings.HasPrefix(hashID, t.prefix) {
		return 0, fmt.Errorf("invalid hash id: %s", hashID)
	}

	nums, err := t.codec.DecodeInt64WithError(strings.TrimPrefix(hashID, t.prefix))
	if err != nil {
		return 0, fmt.Errorf("invalid hash id: %w", err)
	}
	if len(nums) != 1 || nums[0] < 0 {
		return 0, fmt.Errorf("invalid hash id: %s", hashID)
	}

	return uint(nums[0]), nil
}
