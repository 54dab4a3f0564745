package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipe-chef/api/internal/util"
)

const (
	greetingText       = "🧑‍🍳 집에 있는 재료를 보내주세요. 예: 연어, 아보카도, 레몬\n레시피와 완성 예상도를 만들어 드립니다."
	unknownCommandText = "알 수 없는 명령입니다. 재료를 메시지로 보내주세요."
	workingText        = "분석 중..."
	busyText           = "이미 레시피를 만드는 중입니다. 잠시만 기다려주세요."
)

func photoUpload(chatID int64, dataURL, caption string) (tgbotapi.PhotoConfig, error) {
	data, mime, err := util.DecodeDataURL(dataURL)
	if err != nil {
		return tgbotapi.PhotoConfig{}, err
	}
	if len(data) == 0 {
		return tgbotapi.PhotoConfig{}, fmt.Errorf("empty image")
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "dish" + util.ExtForMIME(util.PickMIME(mime, data)),
		Bytes: data,
	})
	photo.Caption = caption
	return photo, nil
}
