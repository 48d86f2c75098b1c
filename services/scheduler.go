// services/scheduler.go - quest schedule window runner
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// QuestScheduler opens pending quests whose window started and closes
// active quests whose window ended.
type QuestScheduler struct {
	quests    *QuestService
	whatsapp  *WhatsAppService
	scheduler gocron.Scheduler
}

func NewQuestScheduler(quests *QuestService, whatsapp *WhatsAppService) *QuestScheduler {
	return &QuestScheduler{quests: quests, whatsapp: whatsapp}
}

// Start launches the minute tick. Errors inside the tick are logged
// and retried on the next run.
func (s *QuestScheduler) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(s.tick),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("✅ Quest scheduler started")
	return nil
}

func (s *QuestScheduler) tick() {
	now := time.Now()

	activated, err := s.quests.ActivateDueQuests(now)
	if err != nil {
		log.Printf("[Scheduler] Failed to activate due quests: %v", err)
	}
	for i := range activated {
		log.Printf("✅ Quest activated on schedule: %s", activated[i].Title)
		if s.whatsapp != nil {
			s.whatsapp.NotifyQuestActivated(&activated[i])
		}
	}

	finalized, err := s.quests.FinalizeExpiredQuests(now)
	if err != nil {
		log.Printf("[Scheduler] Failed to finalize expired quests: %v", err)
	}
	for i := range finalized {
		log.Printf("Quest finalized on schedule: %s", finalized[i].Title)
	}
}

// Stop shuts the scheduler down.
func (s *QuestScheduler) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}
