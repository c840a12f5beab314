package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/lib/pq"
)

const JWTSecret = "test-secret"

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		panic(fmt.Sprintf("sign test token for %s: %v", userPk, err))
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateUserToken(userPk)))
	return req
}

func NewJSONAuthRequestCustomAuth(method string, target string, authorizationString string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", authorizationString)
	return req
}

func FakeUser(users services.UserStore) *models.UserAccount {
	user := &models.UserAccount{
		Name:             "OurName",
		Email:            "email@example.com",
		BodyType:         models.BodyAthletic,
		SkinTone:         models.SkinOlive,
		StylePreferences: pq.StringArray{"minimal", "streetwear"},
		ColorPalette:     pq.StringArray{},
	}
	if err := users.CreateUser(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

// FakeItem adds a clothing item to the owner's wardrobe.
func FakeItem(catalogue services.CatalogueStore, ownerID uint, name string, clothingType models.ClothingType, color string, occasions ...models.Occasion) models.ClothingItem {
	item := models.ClothingItem{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      clothingType,
		Color:     color,
		ColorName: color,
		Fit:       models.FitRegular,
		Condition: models.ConditionGood,
		Occasions: pq.StringArray{},
		Season:    pq.StringArray{},
	}
	for _, occasion := range occasions {
		item.Occasions = append(item.Occasions, string(occasion))
	}
	if err := catalogue.AddItem(context.Background(), &item); err != nil {
		panic(err)
	}
	return item
}

type AWSProviderMock struct {
	MockUrl  string
	Disabled bool
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	if awsService.Disabled {
		return services.ErrStorageDisabled
	}
	return nil
}

func (awsService AWSProviderMock) PresignPhotoUpload(ctx context.Context, bucketName string, fileName string) (string, error) {
	if awsService.Disabled {
		return "", services.ErrStorageDisabled
	}
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) PresignPhotoRead(ctx context.Context, bucketName, fileKey string) (string, error) {
	if awsService.Disabled {
		return "", services.ErrStorageDisabled
	}
	return awsService.MockUrl, nil
}

type URLCacheMock struct {
	Err error
}

func (m *URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("https://cached.example.com/%s", objectKey), nil
}

// EnqueuerMock records tasks instead of sending them to redis.
type EnqueuerMock struct {
	mu    sync.Mutex
	Tasks []*asynq.Task
	Err   error
}

func (m *EnqueuerMock) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Tasks = append(m.Tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(m.Tasks)), Type: task.Type(), Payload: task.Payload()}, nil
}
