package models

import (
	"testing"
	"time"
)

func TestGrantCurrencyNeverNegative(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	grants := []int{500, -200, -5000, 300, -1, 0, 42}
	wantCurrency := StartingCurrency
	wantEarned := 0
	for _, g := range grants {
		applied := p.GrantCurrency(g)
		if g >= 0 {
			wantEarned += g
			if applied != g {
				t.Fatalf("grant %d: applied %d", g, applied)
			}
		}
		wantCurrency += applied
		if p.Currency < 0 {
			t.Fatalf("currency went negative after %d: %d", g, p.Currency)
		}
		if p.Currency != wantCurrency {
			t.Fatalf("after %d: expected %d, got %d", g, wantCurrency, p.Currency)
		}
	}
	if p.Stats.TotalEarned != wantEarned {
		t.Errorf("expected total earned %d, got %d", wantEarned, p.Stats.TotalEarned)
	}
}

func TestGrantExperienceLevelsOncePerCrossing(t *testing.T) {
	p := NewPlayer("Neo", testNow)

	if _, leveled := p.GrantExperience(999); leveled {
		t.Fatal("999 experience should not level a level 1 player")
	}
	prior, leveled := p.GrantExperience(1)
	if !leveled || prior != 1 {
		t.Fatalf("expected level-up from 1, got prior=%d leveled=%v", prior, leveled)
	}
	if p.Level != 2 || p.Experience != 0 {
		t.Fatalf("expected level 2 with 0 exp, got level %d exp %d", p.Level, p.Experience)
	}
	for _, s := range SkillNames {
		if p.Skills[s] != 2 {
			t.Errorf("expected %s at 2, got %d", s, p.Skills[s])
		}
	}

	// A single huge grant crosses once.
	prior, leveled = p.GrantExperience(100000)
	if !leveled || prior != 2 || p.Level != 3 {
		t.Fatalf("expected exactly one level-up to 3, got prior=%d level=%d", prior, p.Level)
	}
	if p.Skills[SkillHacking] != 3 {
		t.Errorf("expected skills +1 once, got %d", p.Skills[SkillHacking])
	}
}

func TestGrantExperienceNegativeFloorsAtZero(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	p.GrantExperience(300)
	if _, leveled := p.GrantExperience(-5000); leveled {
		t.Fatal("negative experience should never level up")
	}
	if p.Experience != 0 {
		t.Errorf("expected experience floored to 0, got %d", p.Experience)
	}
}

func TestGrantSkill(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	if lvl, ok := p.GrantSkill(SkillHacking, 3); !ok || lvl != 4 {
		t.Errorf("expected hacking 4, got %d ok=%v", lvl, ok)
	}
	if _, ok := p.GrantSkill("juggling", 1); ok {
		t.Error("unknown skill should be a no-op")
	}
	if _, ok := p.Skills["juggling"]; ok {
		t.Error("unknown skill must not be added to the key set")
	}
	if _, ok := p.GrantSkill(SkillHacking, -2); ok || p.Skills[SkillHacking] != 4 {
		t.Error("skills must never decrease")
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	if !p.UnlockAchievement(AchievementSniper) {
		t.Fatal("first unlock should report new")
	}
	if p.UnlockAchievement(AchievementSniper) {
		t.Fatal("second unlock should not report new")
	}
	if len(p.Achievements) != 1 || p.Stats.AchievementsUnlocked != 1 {
		t.Errorf("expected exactly one achievement, got %v (%d)", p.Achievements, p.Stats.AchievementsUnlocked)
	}
	if p.UnlockAchievement("") {
		t.Error("empty achievement should be ignored")
	}
}

func TestRankForStanding(t *testing.T) {
	tests := []struct {
		standing int
		want     FactionRank
	}{
		{-501, RankEnemy},
		{-500, RankHated},
		{-201, RankHated},
		{-200, RankUnfriendly},
		{-51, RankUnfriendly},
		{-50, RankNeutral},
		{0, RankNeutral},
		{49, RankNeutral},
		{50, RankFriendly},
		{199, RankFriendly},
		{200, RankRespected},
		{499, RankRespected},
		{500, RankRevered},
		{999, RankRevered},
		{1000, RankLegendary},
		{50000, RankLegendary},
	}
	for _, tt := range tests {
		if got := RankForStanding(tt.standing); got != tt.want {
			t.Errorf("RankForStanding(%d) = %v, want %v", tt.standing, got, tt.want)
		}
	}
}

func TestShiftFaction(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	if v, ok := p.ShiftFaction(FactionAnarchists, 250); !ok || v != 250 {
		t.Fatalf("expected 250, got %d ok=%v", v, ok)
	}
	if p.FactionRank(FactionAnarchists) != RankRespected {
		t.Errorf("expected respected, got %v", p.FactionRank(FactionAnarchists))
	}
	if _, ok := p.ShiftFaction("pirates", 10); ok {
		t.Error("unknown faction should be ignored")
	}
}

func TestInventoryHelpers(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	for _, it := range []string{"Key", "Exploit", "Key", "Key"} {
		p.AddItem(it)
	}
	if p.CountItem("Key") != 3 {
		t.Fatalf("expected 3 keys, got %d", p.CountItem("Key"))
	}
	if n := p.RemoveItem("Key", 2); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if p.CountItem("Key") != 1 || p.CountItem("Exploit") != 1 {
		t.Errorf("unexpected inventory %v", p.Inventory)
	}
	order, counts := p.ItemCounts()
	if len(order) != 2 || counts["Key"] != 1 {
		t.Errorf("unexpected grouping %v %v", order, counts)
	}
	if p.Stats.ItemsCollected != 4 {
		t.Errorf("expected 4 items collected, got %d", p.Stats.ItemsCollected)
	}
}

func TestRecordPlayTime(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	later := testNow.Add(2 * time.Hour)
	p.RecordPlayTime(90*time.Second, later)
	p.RecordPlayTime(30*time.Second, later)
	if p.Stats.PlayTime != 120 {
		t.Errorf("expected 120s, got %v", p.Stats.PlayTime)
	}
	if !p.Stats.LastPlayDate.Equal(later) {
		t.Errorf("expected last play %v, got %v", later, p.Stats.LastPlayDate)
	}
}

func TestPenalize(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	p.Currency = 1000
	if got := p.Penalize(500); got != 250 {
		t.Errorf("expected quarter penalty 250, got %d", got)
	}
	p.Currency = 1000000
	if got := p.Penalize(500); got != 500 {
		t.Errorf("expected capped penalty 500, got %d", got)
	}
	p.Currency = 3
	if got := p.Penalize(500); got != 0 || p.Currency != 3 {
		t.Errorf("expected zero penalty for tiny balance, got %d", got)
	}
}

func TestUnlockMilestones(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	if got := p.UnlockMilestones(); len(got) != 0 {
		t.Fatalf("fresh player should meet no milestones, got %v", got)
	}
	p.BossDefeats = BossSlayerDefeats
	for _, f := range FactionNames {
		p.Factions[f] = DiplomatStanding
	}
	got := p.UnlockMilestones()
	if len(got) != 2 || got[0] != AchievementBossSlayer || got[1] != AchievementFactionDiplomat {
		t.Errorf("unexpected milestones %v", got)
	}
	if again := p.UnlockMilestones(); len(again) != 0 {
		t.Errorf("milestones must unlock once, got %v", again)
	}
}

func TestPowerRank(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	if p.Power() != 5+1+0 {
		t.Errorf("unexpected power %d", p.Power())
	}
	if p.PowerRank() != PowerNovice {
		t.Errorf("expected novice, got %v", p.PowerRank())
	}
	p.Currency = 3000000
	if p.PowerRank() != PowerExpert {
		t.Errorf("expected expert at power %d, got %v", p.Power(), p.PowerRank())
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPlayer("Neo", testNow)
	c := p.Clone()
	c.Skills[SkillHacking] = 99
	c.Factions[FactionHackers] = 99
	c.Inventory = append(c.Inventory, "x")
	if p.Skills[SkillHacking] != 1 || p.Factions[FactionHackers] != 0 || len(p.Inventory) != 0 {
		t.Error("clone aliases the original")
	}
}
