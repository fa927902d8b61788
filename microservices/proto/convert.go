package proto

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"littlego/internal/domain/game"
)

func RequestToStruct(req game.DecideRequest) (*structpb.Struct, error) {
	return toStruct(req)
}

func StructToRequest(s *structpb.Struct) (game.DecideRequest, error) {
	var req game.DecideRequest
	err := fromStruct(s, &req)
	return req, err
}

func ResponseToStruct(resp game.DecideResponse) (*structpb.Struct, error) {
	return toStruct(resp)
}

func StructToResponse(s *structpb.Struct) (game.DecideResponse, error) {
	var resp game.DecideResponse
	err := fromStruct(s, &resp)
	return resp, err
}

// toStruct goes through the JSON form so the wire fields keep their json tags.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func fromStruct(s *structpb.Struct, dst any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
