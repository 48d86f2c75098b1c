package services

import (
	"testing"

	"coringas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// concludeCorrect pushes a (team, quest) record through submission and
// a correct evaluation.
func concludeCorrect(t *testing.T, svc *QuestService, team *models.Team, quest *models.Quest, record *models.TeamQuest) {
	t.Helper()
	_, err := svc.SubmitAnswer(team.ID, quest.ID, "answer")
	require.NoError(t, err)
	require.NoError(t, svc.Evaluate([]uint{record.ID}, true, 1, ""))
}

func TestRankingOrdersByPointsThenCompleted(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quests := NewQuestService(db, nil)
	ranking := NewRankingService(db)

	q10 := seedQuest(t, db, game, 10, models.QuestActive, true)
	q15 := seedQuest(t, db, game, 15, models.QuestActive, true)

	t1 := seedTeam(t, db, game, "T1", models.TeamActive)
	t2 := seedTeam(t, db, game, "T2", models.TeamActive)
	t3 := seedTeam(t, db, game, "T3", models.TeamActive)

	// T1: 10 points, 1 completed. T2: 15 points, 1 completed. T3: nothing.
	r1 := seedProgress(t, db, t1, q10)
	concludeCorrect(t, quests, t1, q10, r1)
	r2 := seedProgress(t, db, t2, q15)
	concludeCorrect(t, quests, t2, q15, r2)

	entries, err := ranking.Ranking(game.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "T2", entries[0].TeamName)
	assert.Equal(t, 15, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].CompletedCount)
	assert.Equal(t, 1, entries[0].Position)

	assert.Equal(t, "T1", entries[1].TeamName)
	assert.Equal(t, 10, entries[1].TotalPoints)

	// Teams with no records still appear with zeroes.
	assert.Equal(t, t3.ID, entries[2].TeamID)
	assert.Equal(t, "T3", entries[2].TeamName)
	assert.Equal(t, 0, entries[2].TotalPoints)
	assert.Equal(t, 0, entries[2].CompletedCount)
	assert.Equal(t, 3, entries[2].Position)
}

func TestRankingTieBrokenByCompletedCount(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quests := NewQuestService(db, nil)
	ranking := NewRankingService(db)

	qa := seedQuest(t, db, game, 5, models.QuestActive, true)
	qb := seedQuest(t, db, game, 5, models.QuestActive, true)
	qc := seedQuest(t, db, game, 10, models.QuestActive, true)

	t1 := seedTeam(t, db, game, "T1", models.TeamActive)
	t2 := seedTeam(t, db, game, "T2", models.TeamActive)

	// Both at 10 points; T1 with two completed quests, T2 with one.
	ra := seedProgress(t, db, t1, qa)
	concludeCorrect(t, quests, t1, qa, ra)
	rb := seedProgress(t, db, t1, qb)
	concludeCorrect(t, quests, t1, qb, rb)
	rc := seedProgress(t, db, t2, qc)
	concludeCorrect(t, quests, t2, qc, rc)

	entries, err := ranking.Ranking(game.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "T1", entries[0].TeamName)
	assert.Equal(t, "T2", entries[1].TeamName)
}

func TestRankingIgnoresWrongAndUnevaluatedRecords(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quests := NewQuestService(db, nil)
	ranking := NewRankingService(db)

	qa := seedQuest(t, db, game, 10, models.QuestActive, true)
	qb := seedQuest(t, db, game, 10, models.QuestActive, true)

	team := seedTeam(t, db, game, "T1", models.TeamActive)

	// Wrong evaluation contributes nothing.
	ra := seedProgress(t, db, team, qa)
	_, err := quests.SubmitAnswer(team.ID, qa.ID, "bad answer")
	require.NoError(t, err)
	require.NoError(t, quests.Evaluate([]uint{ra.ID}, false, 1, ""))

	// Awaiting evaluation contributes nothing either.
	seedProgress(t, db, team, qb)
	_, err = quests.SubmitAnswer(team.ID, qb.ID, "pending answer")
	require.NoError(t, err)

	entries, err := ranking.Ranking(game.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].TotalPoints)
	assert.Equal(t, 0, entries[0].CompletedCount)
}

func TestRankingUnaffectedByOtherTeams(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quests := NewQuestService(db, nil)
	ranking := NewRankingService(db)

	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	t1 := seedTeam(t, db, game, "T1", models.TeamActive)
	t2 := seedTeam(t, db, game, "T2", models.TeamActive)

	r1 := seedProgress(t, db, t1, quest)
	concludeCorrect(t, quests, t1, quest, r1)

	before, err := ranking.Ranking(game.ID)
	require.NoError(t, err)

	// Conclude the other team's record; T1's total must not move.
	r2 := seedProgress(t, db, t2, quest)
	concludeCorrect(t, quests, t2, quest, r2)

	after, err := ranking.Ranking(game.ID)
	require.NoError(t, err)

	pointsOf := func(entries []RankingEntry, name string) int {
		for _, e := range entries {
			if e.TeamName == name {
				return e.TotalPoints
			}
		}
		t.Fatalf("team %s missing from ranking", name)
		return 0
	}
	assert.Equal(t, pointsOf(before, "T1"), pointsOf(after, "T1"))
}

func TestRankingIsDeterministicBetweenCalls(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quests := NewQuestService(db, nil)
	ranking := NewRankingService(db)

	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	record := seedProgress(t, db, team, quest)
	concludeCorrect(t, quests, team, quest, record)
	seedTeam(t, db, game, "T2", models.TeamActive)

	first, err := ranking.Ranking(game.ID)
	require.NoError(t, err)
	second, err := ranking.Ranking(game.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRankingWithNoQuests(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	seedTeam(t, db, game, "T1", models.TeamActive)

	ranking := NewRankingService(db)
	entries, err := ranking.Ranking(game.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].TotalPoints)
}
