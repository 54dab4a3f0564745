package recipe

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/apex/log"
)

// GenerationFailedMessage is the one error the user sees for any generation failure.
const GenerationFailedMessage = "레시피를 생성하는 중에 문제가 발생했습니다."

var (
	ErrNoIngredients = errors.New("recipe: ingredients are empty")
	ErrBusy          = errors.New("recipe: a request is already running")
)

// Generator is the hosted model pair behind a recommendation.
type Generator interface {
	Recipe(ctx context.Context, ingredients string) (string, error)
	// DishImage returns a data URL, or "" when the model sent no image.
	DishImage(ctx context.Context, dishName string) (string, error)
}

type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// Recommend runs text generation, title extraction and image generation
// for the ingredients, writing every step into st.
//
// mu guards st; it is held for each write and released while the hosted
// models work, so readers can watch the request progress. A nil mu means
// st is not shared.
// onReset runs under mu right after st is cleared, before any network
// call; callers use it to reset state that lives next to the recipe.
// Generation failures are recorded in st.Error and are not returned.
func (s *Service) Recommend(ctx context.Context, mu sync.Locker, st *State, ingredients string, onReset func()) error {
	if strings.TrimSpace(ingredients) == "" {
		return ErrNoIngredients
	}
	if mu == nil {
		mu = nopLocker{}
	}

	mu.Lock()
	if st.Loading {
		mu.Unlock()
		return ErrBusy
	}
	st.begin(ingredients)
	if onReset != nil {
		onReset()
	}
	mu.Unlock()

	l := log.WithField("ingredients", ingredients)

	text, err := s.gen.Recipe(ctx, ingredients)
	if err != nil {
		l.WithError(err).Error("recipe generation failed")
		mu.Lock()
		st.fail(GenerationFailedMessage)
		mu.Unlock()
		return nil
	}
	mu.Lock()
	st.Content = text
	mu.Unlock()

	dish := ExtractDishName(text)
	l = l.WithField("dish", dish)

	img, err := s.gen.DishImage(ctx, dish)
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		l.WithError(err).Error("dish image generation failed")
		st.fail(GenerationFailedMessage)
		return nil
	}
	st.Loading = false
	if img != "" {
		st.Image = &img
	}
	l.WithField("has_image", img != "").Info("recipe ready")
	return nil
}
