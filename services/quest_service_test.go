package services

import (
	"testing"
	"time"

	"coringas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAnswerTransitionsToAnswered(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	confirmed, err := svc.SubmitAnswer(team.ID, quest.ID, "  ABC  ")
	require.NoError(t, err)
	assert.True(t, confirmed)

	var record models.TeamQuest
	require.NoError(t, db.Where("team_id = ? AND quest_id = ?", team.ID, quest.ID).First(&record).Error)
	assert.Equal(t, models.TeamQuestAnswered, record.Status)
	require.NotNil(t, record.Answer)
	assert.Equal(t, "ABC", *record.Answer)
	require.NotNil(t, record.SubmittedAt)
}

func TestSubmitAnswerRejectsEmptyAnswer(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	for _, answer := range []string{"", "   ", "\t\n"} {
		_, err := svc.SubmitAnswer(team.ID, quest.ID, answer)
		assert.ErrorIs(t, err, ErrEmptyAnswer)
	}

	// No write happened: the record is still pristine.
	var record models.TeamQuest
	require.NoError(t, db.Where("team_id = ? AND quest_id = ?", team.ID, quest.ID).First(&record).Error)
	assert.Equal(t, models.TeamQuestPending, record.Status)
	assert.Nil(t, record.Answer)
}

func TestSubmitAnswerRejectsMissingIDs(t *testing.T) {
	svc := NewQuestService(testDB(t), nil)

	_, err := svc.SubmitAnswer(0, 1, "answer")
	assert.ErrorIs(t, err, ErrMissingIDs)

	_, err = svc.SubmitAnswer(1, 0, "answer")
	assert.ErrorIs(t, err, ErrMissingIDs)
}

func TestSubmitAnswerUnconfirmedWithoutProgressRow(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	// No progress row provisioned.

	svc := NewQuestService(db, nil)

	confirmed, err := svc.SubmitAnswer(team.ID, quest.ID, "ABC")
	require.NoError(t, err)
	assert.False(t, confirmed, "missing row must surface as an unconfirmed write, not an error")
}

func TestSubmitAnswerNeverReopensConcludedRecord(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	record := seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	_, err := svc.SubmitAnswer(team.ID, quest.ID, "first")
	require.NoError(t, err)
	require.NoError(t, svc.Evaluate([]uint{record.ID}, true, 1, ""))

	confirmed, err := svc.SubmitAnswer(team.ID, quest.ID, "late answer")
	require.NoError(t, err)
	assert.False(t, confirmed)

	var reloaded models.TeamQuest
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, models.TeamQuestConcluded, reloaded.Status)
	assert.Equal(t, "first", *reloaded.Answer)
	assert.Equal(t, 10, reloaded.PointsAwarded)
}

func TestEvaluateCorrectAwardsQuestPoints(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	record := seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	_, err := svc.SubmitAnswer(team.ID, quest.ID, "ABC")
	require.NoError(t, err)
	require.NoError(t, svc.Evaluate([]uint{record.ID}, true, 7, "well done"))

	var reloaded models.TeamQuest
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, models.TeamQuestConcluded, reloaded.Status)
	require.NotNil(t, reloaded.Evaluation)
	assert.Equal(t, models.EvaluationCorrect, *reloaded.Evaluation)
	assert.Equal(t, 10, reloaded.PointsAwarded)
	require.NotNil(t, reloaded.EvaluatorID)
	assert.Equal(t, uint(7), *reloaded.EvaluatorID)
	require.NotNil(t, reloaded.Feedback)
	assert.Equal(t, "well done", *reloaded.Feedback)
}

func TestEvaluateIncorrectAwardsZeroPoints(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	record := seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	_, err := svc.SubmitAnswer(team.ID, quest.ID, "wrong guess")
	require.NoError(t, err)
	require.NoError(t, svc.Evaluate([]uint{record.ID}, false, 7, ""))

	var reloaded models.TeamQuest
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, models.TeamQuestConcluded, reloaded.Status)
	require.NotNil(t, reloaded.Evaluation)
	assert.Equal(t, models.EvaluationWrong, *reloaded.Evaluation)
	assert.Equal(t, 0, reloaded.PointsAwarded)
}

func TestEvaluateBatchAppliesOneOutcome(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 5, models.QuestActive, true)

	svc := NewQuestService(db, nil)

	var ids []uint
	for _, name := range []string{"T1", "T2", "T3"} {
		team := seedTeam(t, db, game, name, models.TeamActive)
		record := seedProgress(t, db, team, quest)
		_, err := svc.SubmitAnswer(team.ID, quest.ID, "answer from "+name)
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}

	require.NoError(t, svc.Evaluate(ids, true, 1, ""))

	var records []models.TeamQuest
	require.NoError(t, db.Where("id IN ?", ids).Find(&records).Error)
	require.Len(t, records, 3)
	for _, record := range records {
		assert.Equal(t, models.TeamQuestConcluded, record.Status)
		require.NotNil(t, record.Evaluation)
		assert.Equal(t, models.EvaluationCorrect, *record.Evaluation)
		assert.Equal(t, 5, record.PointsAwarded)
	}
}

func TestEvaluateRejectsEmptyBatch(t *testing.T) {
	svc := NewQuestService(testDB(t), nil)
	assert.ErrorIs(t, svc.Evaluate(nil, true, 1, ""), ErrEmptyBatch)
}

func TestEvaluateIdempotentWithSameFlag(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 10, models.QuestActive, true)
	team := seedTeam(t, db, game, "T1", models.TeamActive)
	record := seedProgress(t, db, team, quest)

	svc := NewQuestService(db, nil)

	_, err := svc.SubmitAnswer(team.ID, quest.ID, "ABC")
	require.NoError(t, err)
	require.NoError(t, svc.Evaluate([]uint{record.ID}, true, 1, ""))
	require.NoError(t, svc.Evaluate([]uint{record.ID}, true, 1, ""))

	var reloaded models.TeamQuest
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, models.TeamQuestConcluded, reloaded.Status)
	assert.Equal(t, 10, reloaded.PointsAwarded)
}

func TestListVisibleGateAndOrdering(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)

	two := 2
	one := 1
	visible2 := models.Quest{GameID: game.ID, Title: "Second", Number: &two, Points: 5, Status: models.QuestActive, Visible: true}
	visible1 := models.Quest{GameID: game.ID, Title: "First", Number: &one, Points: 5, Status: models.QuestActive, Visible: true}
	noOrdinal := models.Quest{GameID: game.ID, Title: "Unnumbered", Points: 5, Status: models.QuestActive, Visible: true}
	hidden := models.Quest{GameID: game.ID, Title: "Hidden", Points: 5, Status: models.QuestActive, Visible: false}
	inactive := models.Quest{GameID: game.ID, Title: "Inactive", Points: 5, Status: models.QuestInactive, Visible: true}
	for _, q := range []*models.Quest{&visible2, &visible1, &noOrdinal, &hidden, &inactive} {
		require.NoError(t, db.Create(q).Error)
	}

	svc := NewQuestService(db, nil)
	quests, err := svc.ListVisible(game.ID)
	require.NoError(t, err)

	require.Len(t, quests, 3)
	// Missing ordinal sorts first, then by ordinal ascending.
	assert.Equal(t, "Unnumbered", quests[0].Title)
	assert.Equal(t, "First", quests[1].Title)
	assert.Equal(t, "Second", quests[2].Title)
}

func TestGetQuestAdminBypassesVisibilityOnly(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	hidden := seedQuest(t, db, game, 5, models.QuestActive, false)

	svc := NewQuestService(db, nil)

	_, err := svc.GetQuest(hidden.ID, false)
	assert.ErrorIs(t, err, ErrQuestHidden)

	quest, err := svc.GetQuest(hidden.ID, true)
	require.NoError(t, err)
	assert.Equal(t, hidden.ID, quest.ID)
}

func TestActivateProvisionsProgressRows(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)
	quest := seedQuest(t, db, game, 5, models.QuestPending, true)
	active := seedTeam(t, db, game, "Active", models.TeamActive)
	seedTeam(t, db, game, "Pending", models.TeamPending)

	broker := NewEventBroker()
	ch := broker.Subscribe(game.ID)
	defer broker.Unsubscribe(game.ID, ch)

	svc := NewQuestService(db, broker)

	updated, err := svc.Activate(quest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuestActive, updated.Status)

	// Only the active team is provisioned.
	var records []models.TeamQuest
	require.NoError(t, db.Where("quest_id = ?", quest.ID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, active.ID, records[0].TeamID)
	assert.Equal(t, models.TeamQuestPending, records[0].Status)

	select {
	case msg := <-ch:
		assert.Contains(t, string(msg), EventQuestActivated)
	default:
		t.Fatal("expected a quest_activated event")
	}

	// Re-activating keeps the existing row.
	_, err = svc.Activate(quest.ID)
	require.NoError(t, err)
	var count int64
	db.Model(&models.TeamQuest{}).Where("quest_id = ?", quest.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSchedulerWindowTransitions(t *testing.T) {
	db := testDB(t)
	game := seedGame(t, db)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	due := models.Quest{GameID: game.ID, Title: "Due", Points: 5, Status: models.QuestPending, Visible: true, StartDate: &past}
	notYet := models.Quest{GameID: game.ID, Title: "NotYet", Points: 5, Status: models.QuestPending, Visible: true, StartDate: &future}
	expired := models.Quest{GameID: game.ID, Title: "Expired", Points: 5, Status: models.QuestActive, Visible: true, EndDate: &past}
	for _, q := range []*models.Quest{&due, &notYet, &expired} {
		require.NoError(t, db.Create(q).Error)
	}

	svc := NewQuestService(db, nil)

	activated, err := svc.ActivateDueQuests(time.Now())
	require.NoError(t, err)
	require.Len(t, activated, 1)
	assert.Equal(t, "Due", activated[0].Title)

	finalized, err := svc.FinalizeExpiredQuests(time.Now())
	require.NoError(t, err)
	require.Len(t, finalized, 1)
	assert.Equal(t, "Expired", finalized[0].Title)

	var reloaded models.Quest
	require.NoError(t, db.First(&reloaded, notYet.ID).Error)
	assert.Equal(t, models.QuestPending, reloaded.Status)
}
