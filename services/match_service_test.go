package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bingo-archive-system/models"
)

func boolPtr(b bool) *bool { return &b }

func TestValidateParticipants(t *testing.T) {
	cases := []struct {
		name    string
		players []ParticipantInput
		outcome string
		wantErr bool
	}{
		{
			name:    "no participants is fine",
			players: nil,
			outcome: models.OutcomeAbandoned,
		},
		{
			name: "single winner on bingo",
			players: []ParticipantInput{
				{PlayerID: "p1", IsWinner: boolPtr(true)},
				{PlayerID: "p2", IsWinner: boolPtr(false)},
			},
			outcome: models.OutcomeBingo,
		},
		{
			name: "nil winner flags allowed",
			players: []ParticipantInput{
				{PlayerID: "p1"},
				{PlayerID: "p2"},
			},
			outcome: models.OutcomeBingo,
		},
		{
			name: "duplicate player rejected",
			players: []ParticipantInput{
				{PlayerID: "p1"},
				{PlayerID: "p1"},
			},
			outcome: models.OutcomeBingo,
			wantErr: true,
		},
		{
			name: "two winners rejected",
			players: []ParticipantInput{
				{PlayerID: "p1", IsWinner: boolPtr(true)},
				{PlayerID: "p2", IsWinner: boolPtr(true)},
			},
			outcome: models.OutcomeBlackout,
			wantErr: true,
		},
		{
			name: "winner on a draw rejected",
			players: []ParticipantInput{
				{PlayerID: "p1", IsWinner: boolPtr(true)},
			},
			outcome: models.OutcomeDraw,
			wantErr: true,
		},
		{
			name: "missing player id rejected",
			players: []ParticipantInput{
				{PlayerID: ""},
			},
			outcome: models.OutcomeBingo,
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateParticipants(c.players, c.outcome)
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
