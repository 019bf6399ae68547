package requestresponse

import "jokes-web-server/internal/model"

// CreateJokeRequest : тело запроса на создание шутки
type CreateJokeRequest struct {
	Name    string `json:"name" example:"Road worker"`
	Content string `json:"content" example:"I never wanted to believe that my Dad was stealing from his job as a road worker. But when I got home, all the signs were there."`
}

// JokeResponse : ответ с одной шуткой
type JokeResponse struct {
	Joke *model.Joke `json:"joke"`
}

// JokeListResponse : список шуток
type JokeListResponse struct {
	JokeListItems []*model.Joke `json:"jokeListItems"`
}

// DeleteJokeResponse : подтверждение удаления
type DeleteJokeResponse struct {
	JokeUUID string `json:"joke_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Deleted  bool   `json:"deleted" example:"true"`
}
