package effects

import (
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/tatianab/terminal-shadows/internal/locale"
	"github.com/tatianab/terminal-shadows/internal/models"
)

func intp(v int) *int { return &v }

func newPlayer() *models.Player {
	return models.NewPlayer("Neo", time.Date(2049, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestOrdered(t *testing.T) {
	bag := Bag{
		UnlockAchievement{Name: "A"},
		ShiftFaction{Faction: models.FactionHackers, Amount: 1},
		GrantExperience{Amount: 5},
		GrantCurrency{Amount: 1},
		GrantSkill{Skill: models.SkillSocial, Amount: 1},
		GrantCurrency{Amount: 2},
	}
	var kinds []Kind
	for _, e := range bag.Ordered() {
		kinds = append(kinds, e.Kind())
	}
	want := []Kind{KindCurrency, KindCurrency, KindSkill, KindExperience, KindFaction, KindAchievement}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	if got := bag.Ordered()[1]; got != (GrantCurrency{Amount: 2}) {
		t.Errorf("same-kind order not stable: %v", got)
	}
	if _, ok := bag[0].(UnlockAchievement); !ok {
		t.Error("Ordered modified its receiver")
	}
}

func TestApplyOrderAndMessages(t *testing.T) {
	r := NewResolver(nil)
	p := newPlayer()
	got := r.Apply(Bag{
		UnlockAchievement{Name: models.AchievementQuickStart},
		GrantExperience{Amount: 1000},
		GrantCurrency{Amount: 100},
		GrantItem{Item: "💾 Exploit"},
	}, p)
	want := []string{
		"💰 +100 BTC",
		"🎉 Level up! Now level 2. All skills +1!",
		"🎒 Received: 💾 Exploit",
		"🏆 Achievement unlocked: Quick Start",
	}
	if !slices.Equal(got, want) {
		t.Errorf("messages:\n got %q\nwant %q", got, want)
	}
	if p.Level != 2 || p.Experience != 0 || p.Skills[models.SkillHacking] != 2 {
		t.Errorf("player after level-up = level %d exp %d skills %v", p.Level, p.Experience, p.Skills)
	}
}

func TestLevelUpOncePerGrant(t *testing.T) {
	r := NewResolver(nil)
	p := newPlayer()
	r.Apply(Bag{GrantExperience{Amount: 999999}}, p)
	if p.Level != 2 || p.Experience != 0 {
		t.Errorf("level %d exp %d, want one level-up", p.Level, p.Experience)
	}
	for _, s := range models.SkillNames {
		if p.Skills[s] != 2 {
			t.Errorf("%s = %d, want 2", s, p.Skills[s])
		}
	}
}

func TestCurrencyNeverNegative(t *testing.T) {
	r := NewResolver(nil)
	p := newPlayer()
	p.Currency = 400
	got := r.Apply(Bag{GrantCurrency{Amount: -5000}}, p)
	if p.Currency != 0 {
		t.Errorf("currency = %d", p.Currency)
	}
	if !slices.Equal(got, []string{"💸 -400 BTC"}) {
		t.Errorf("messages = %q", got)
	}
	if got := r.Apply(Bag{GrantCurrency{Amount: -10}}, p); len(got) != 0 {
		t.Errorf("clamped to zero should be silent, got %q", got)
	}
}

func TestNoOpEffectsAreSilent(t *testing.T) {
	r := NewResolver(nil)
	p := newPlayer()
	before := p.Clone()
	got := r.Apply(Bag{
		GrantSkill{Skill: "juggling", Amount: 3},
		GrantAllSkills{Amount: 0},
		GrantExperience{Amount: 0},
		RaiseLevel{Levels: 0},
		ShiftFaction{Faction: "pirates", Amount: 10},
	}, p)
	if len(got) != 0 {
		t.Errorf("messages = %q", got)
	}
	if !reflect.DeepEqual(p, before) {
		t.Errorf("player changed: %+v", p)
	}
}

func TestAchievementIdempotent(t *testing.T) {
	r := NewResolver(nil)
	p := newPlayer()
	first := r.Apply(Bag{UnlockAchievement{Name: models.AchievementSniper}}, p)
	second := r.Apply(Bag{UnlockAchievement{Name: models.AchievementSniper}}, p)
	if len(first) != 1 || len(second) != 0 {
		t.Errorf("first %q second %q", first, second)
	}
	if n := len(p.Achievements); n != 1 || p.Stats.AchievementsUnlocked != 1 {
		t.Errorf("achievements = %v", p.Achievements)
	}
}

func TestFromSpecLevels(t *testing.T) {
	spec := models.EffectSpec{Level: intp(4), LevelUp: 1}

	p := newPlayer()
	p.SetLevel(10)
	NewResolver(nil).ApplySpec(spec, p)
	if p.Level != 5 {
		t.Errorf("choice effect: level = %d, want set to 4 then raised to 5", p.Level)
	}

	p = newPlayer()
	p.SetLevel(10)
	NewResolver(nil).ApplyEvent(spec, p)
	if p.Level != 15 {
		t.Errorf("event reward: level = %d, want 10+4+1", p.Level)
	}
}

func TestFromSpecFullBag(t *testing.T) {
	spec := models.EffectSpec{
		Currency:    intp(50),
		Skill:       models.SkillStealth,
		Experience:  intp(10),
		Item:        "📜 Ancient Knowledge",
		Reputation:  intp(-20),
		Faction:     &models.FactionShift{Faction: models.FactionGovernment, Amount: -300},
		Faction2:    &models.FactionShift{Faction: models.FactionAnarchists, Amount: 200},
		Achievement: models.AchievementTracker,
	}
	want := Bag{
		GrantCurrency{Amount: 50},
		GrantSkill{Skill: models.SkillStealth, Amount: 1},
		GrantExperience{Amount: 10},
		GrantItem{Item: "📜 Ancient Knowledge"},
		ShiftReputation{Amount: -20},
		ShiftFaction{Faction: models.FactionGovernment, Amount: -300},
		ShiftFaction{Faction: models.FactionAnarchists, Amount: 200},
		UnlockAchievement{Name: models.AchievementTracker},
	}
	if got := FromSpec(spec); !reflect.DeepEqual(got, want) {
		t.Errorf("FromSpec:\n got %#v\nwant %#v", got, want)
	}
	if got := FromSpec(models.EffectSpec{}); len(got) != 0 {
		t.Errorf("empty spec = %#v", got)
	}

	p := newPlayer()
	msgs := NewResolver(nil).ApplySpec(spec, p)
	if p.Factions[models.FactionGovernment] != -300 || p.Factions[models.FactionAnarchists] != 200 {
		t.Errorf("factions = %v", p.Factions)
	}
	if !slices.Contains(msgs, "🎯 GOVERNMENT: -300 (Hated)") {
		t.Errorf("messages = %q", msgs)
	}
}

func TestMilestonesAfterApply(t *testing.T) {
	p := newPlayer()
	p.BossDefeats = models.BossSlayerDefeats
	got := NewResolver(nil).Apply(nil, p)
	if !slices.Equal(got, []string{"🏆 Achievement unlocked: Boss Slayer"}) {
		t.Errorf("messages = %q", got)
	}
}

func TestRussianMessages(t *testing.T) {
	r := NewResolver(locale.Printer(locale.Russian))
	p := newPlayer()
	got := r.Apply(Bag{
		GrantExperience{Amount: 100},
		GrantItem{Item: "🔑 Encryption Key"},
	}, p)
	want := []string{"⭐ +100 опыта", "🎒 Получено: 🔑 Ключ шифрования"}
	if !slices.Equal(got, want) {
		t.Errorf("messages:\n got %q\nwant %q", got, want)
	}
	if p.Inventory[0] != "🔑 Encryption Key" {
		t.Errorf("inventory must keep the canonical name, got %q", p.Inventory[0])
	}
}
