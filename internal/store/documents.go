package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type resumeRepo struct{ t docTable }

func (r *resumeRepo) Get(ctx context.Context, userID string) (*Resume, error) {
	var doc Resume
	ok, err := r.t.findOne(ctx, Filter{ColUserID: userID}, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}

func (r *resumeRepo) Save(ctx context.Context, doc *Resume) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	return r.t.upsert(ctx, Filter{ColUserID: doc.UserID}, doc, doc.UpdatedAt)
}

type skillProfileRepo struct{ t docTable }

func (r *skillProfileRepo) Get(ctx context.Context, userID string) (*SkillProfile, error) {
	var doc SkillProfile
	ok, err := r.t.findOne(ctx, Filter{ColUserID: userID}, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}

func (r *skillProfileRepo) Save(ctx context.Context, doc *SkillProfile) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	return r.t.upsert(ctx, Filter{ColUserID: doc.UserID}, doc, doc.UpdatedAt)
}

type learningPathRepo struct{ t docTable }

func (r *learningPathRepo) Get(ctx context.Context, userID string) (*LearningPath, error) {
	var doc LearningPath
	ok, err := r.t.findOne(ctx, Filter{ColUserID: userID}, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}

func (r *learningPathRepo) Save(ctx context.Context, doc *LearningPath) error {
	if doc.LastRecalculatedAt.IsZero() {
		doc.LastRecalculatedAt = time.Now().UTC()
	}
	return r.t.upsert(ctx, Filter{ColUserID: doc.UserID}, doc, doc.LastRecalculatedAt)
}

type roadmapRepo struct{ t docTable }

func (r *roadmapRepo) Get(ctx context.Context, userID, targetRole string) (*CareerRoadmap, error) {
	var doc CareerRoadmap
	ok, err := r.t.findOne(ctx, Filter{ColUserID: userID, ColTargetRole: targetRole}, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}

func (r *roadmapRepo) Save(ctx context.Context, doc *CareerRoadmap) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	key := Filter{ColUserID: doc.UserID, ColTargetRole: doc.TargetRole}
	return r.t.upsert(ctx, key, doc, doc.UpdatedAt)
}

func (r *roadmapRepo) List(ctx context.Context, userID string) ([]CareerRoadmap, error) {
	var out []CareerRoadmap
	err := r.t.find(ctx, Filter{ColUserID: userID}, 0, Sort{Column: ColUpdatedAt, Desc: true}, func(data []byte) error {
		var doc CareerRoadmap
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		out = append(out, doc)
		return nil
	})
	return out, err
}

type quizRepo struct{ t docTable }

func (r *quizRepo) Append(ctx context.Context, q *QuizResult) error {
	if q.ID == "" {
		return fmt.Errorf("quiz result requires an id")
	}
	if q.TakenAt.IsZero() {
		q.TakenAt = time.Now().UTC()
	}
	cols := Filter{
		ColQuizID:  q.ID,
		ColUserID:  q.UserID,
		ColTakenAt: q.TakenAt.UnixNano(),
	}
	return r.t.insert(ctx, cols, q, q.TakenAt)
}

func (r *quizRepo) Recent(ctx context.Context, userID string, limit int) ([]QuizResult, error) {
	var out []QuizResult
	err := r.t.find(ctx, Filter{ColUserID: userID}, limit, Sort{Column: ColTakenAt, Desc: true}, func(data []byte) error {
		var q QuizResult
		if err := json.Unmarshal(data, &q); err != nil {
			return err
		}
		out = append(out, q)
		return nil
	})
	return out, err
}

type progressRepo struct{ t docTable }

func (r *progressRepo) Get(ctx context.Context, userID string) (*ProgressSignal, error) {
	var doc ProgressSignal
	ok, err := r.t.findOne(ctx, Filter{ColUserID: userID}, &doc)
	if err != nil || !ok {
		return nil, err
	}
	return &doc, nil
}

func (r *progressRepo) Save(ctx context.Context, doc *ProgressSignal) error {
	if doc.SpeedLabel == "" {
		doc.SpeedLabel = SpeedAverage
	}
	if doc.LastActiveAt.IsZero() {
		doc.LastActiveAt = time.Now().UTC()
	}
	return r.t.upsert(ctx, Filter{ColUserID: doc.UserID}, doc, doc.LastActiveAt)
}

type conversationRepo struct{ t docTable }

func (r *conversationRepo) Get(ctx context.Context, userID string) (*ConversationLog, error) {
	return getConversation(ctx, r.t, userID)
}

func (r *conversationRepo) Append(ctx context.Context, userID string, limit int, entries ...ConversationEntry) (*ConversationLog, error) {
	var log *ConversationLog
	err := r.t.inTx(ctx, func(tx docTable) error {
		var err error
		log, err = getConversation(ctx, tx, userID)
		if err != nil {
			return err
		}
		log.Entries = CapEntries(append(log.Entries, entries...), limit)
		return tx.upsert(ctx, Filter{ColUserID: userID}, log, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("append conversation: %w", err)
	}
	return log, nil
}

func getConversation(ctx context.Context, t docTable, userID string) (*ConversationLog, error) {
	log := &ConversationLog{UserID: userID}
	if _, err := t.findOne(ctx, Filter{ColUserID: userID}, log); err != nil {
		return nil, err
	}
	if log.Entries == nil {
		log.Entries = []ConversationEntry{}
	}
	return log, nil
}

// CapEntries keeps the most recent limit entries. A non-positive limit
// keeps everything.
func CapEntries(entries []ConversationEntry, limit int) []ConversationEntry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return append([]ConversationEntry(nil), entries[len(entries)-limit:]...)
}
