package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedRef(t *testing.T) {
	testCases := []struct {
		name    string
		label   string
		want    SeedRef
		wantErr bool
	}{
		{name: "empty is unresolved", label: "", want: UnresolvedSeed()},
		{name: "TBD is unresolved", label: "TBD", want: UnresolvedSeed()},
		{name: "tbd lowercase", label: "tbd", want: UnresolvedSeed()},
		{name: "whitespace only", label: "   ", want: UnresolvedSeed()},
		{name: "winner reference", label: "winner:sf1", want: MatchWinnerSeed("sf1")},
		{name: "winner uppercased slot", label: "winner:SF1", want: MatchWinnerSeed("sf1")},
		{name: "winner without slot", label: "winner:", wantErr: true},
		{name: "group rank", label: "group-a:1", want: GroupRankSeed("group-a", 1)},
		{name: "group rank two", label: "group-b:2", want: GroupRankSeed("group-b", 2)},
		{name: "zero rank rejected", label: "group-a:0", wantErr: true},
		{name: "negative rank rejected", label: "group-a:-1", wantErr: true},
		{name: "non numeric rank rejected", label: "group-a:first", wantErr: true},
		{name: "missing group id rejected", label: ":1", wantErr: true},
		{name: "plain id is literal", label: "squad-42", want: LiteralSeed("squad-42")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSeedRef(tc.label)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeedRefString(t *testing.T) {
	assert.Equal(t, "squad-42", LiteralSeed("squad-42").String())
	assert.Equal(t, "group-a:2", GroupRankSeed("group-a", 2).String())
	assert.Equal(t, "winner:qf3", MatchWinnerSeed("QF3").String())
	assert.Equal(t, "TBD", UnresolvedSeed().String())
}

func TestSeedRefJSON(t *testing.T) {
	slot := BracketSlot{
		ID:    SlotSF1,
		Round: RoundSemiFinal,
		SeedA: GroupRankSeed("group-a", 1),
		SeedB: MatchWinnerSeed("qf2"),
	}

	data, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"sf1","round":"semi_final","a":"group-a:1","b":"winner:qf2"}`, string(data))

	var decoded BracketSlot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, slot, decoded)
}

func TestSeedRefEqual(t *testing.T) {
	assert.True(t, MatchWinnerSeed("sf1").Equal(MatchWinnerSeed("SF1")))
	assert.True(t, GroupRankSeed("g", 1).Equal(GroupRankSeed("g", 1)))
	assert.False(t, GroupRankSeed("g", 1).Equal(GroupRankSeed("g", 2)))
	assert.False(t, LiteralSeed("a").Equal(GroupRankSeed("a", 1)))
	assert.True(t, UnresolvedSeed().Equal(UnresolvedSeed()))
}
