package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDishName(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"markdown heading", "# 연어 아보카도 덮밥\n\n## 재료\n- 연어 200g", "연어 아보카도 덮밥"},
		{"subheading", "오늘의 추천!\n## 레몬 버터 연어 스테이크 \n재료", "레몬 버터 연어 스테이크"},
		{"요리명 label", "요리명: 김치 볶음밥\n재료: 김치, 밥", "김치 볶음밥"},
		{"제목 label", "제목: 된장찌개\n\n1. 물을 끓인다", "된장찌개"},
		{"first match wins", "요리명: 계란말이\n# 다른 이름", "계란말이"},
		{"no heading", "연어와 아보카도를 섞어 드세요.", FallbackDishName},
		{"empty heading", "# \n재료", FallbackDishName},
		{"blank heading", "#    \n재료", FallbackDishName},
		{"blank label", "제목:   \n", FallbackDishName},
		{"empty text", "", FallbackDishName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractDishName(tc.text))
		})
	}
}
