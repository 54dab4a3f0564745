package gemini

import "fmt"

// EmptyRecipeText is returned when the text model answers with no text.
const EmptyRecipeText = "레시피를 생성할 수 없습니다."

func RecipePrompt(ingredients string) string {
	return fmt.Sprintf(`다음 재료들을 활용한 맛있는 요리 레시피를 추천해줘: %s. 
    요리 이름, 필요한 재료(정확한 분량 포함), 조리 순서(번호 매기기), 그리고 꿀팁을 포함해서 마크다운 형식으로 작성해줘.`, ingredients)
}

func DishImagePrompt(dishName string) string {
	return fmt.Sprintf(`A high-quality, appetizing food photography of a dish called "%s". Professional lighting, top-down or 45-degree angle, rustic table setting.`, dishName)
}
