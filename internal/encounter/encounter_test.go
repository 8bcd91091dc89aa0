package encounter

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tatianab/terminal-shadows/internal/menu"
	"github.com/tatianab/terminal-shadows/internal/models"
	"github.com/tatianab/terminal-shadows/internal/random"
)

var testNow = time.Date(2049, 3, 1, 12, 0, 0, 0, time.UTC)

func newPlayer() *models.Player {
	return models.NewPlayer("Neo", testNow)
}

func scripted(floats []float64, ints ...int) *Resolver {
	return NewResolver(&random.Sequence{Floats: floats, Ints: ints}, nil)
}

func TestHackChance(t *testing.T) {
	tests := []struct {
		skill, difficulty int
		want              float64
	}{
		{1, 2, 0.125},
		{1, 1, 0.25},
		{4, 1, 0.95},
		{100, 40, 0.95},
		{3, 0, 0.95},
	}
	for _, tt := range tests {
		if got := HackChance(tt.skill, tt.difficulty); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HackChance(%d, %d) = %v, want %v", tt.skill, tt.difficulty, got, tt.want)
		}
	}
}

func TestHackSuccessBelowThreshold(t *testing.T) {
	target := Target{Name: "Test Box", Reward: 1000, Difficulty: 2, RequiredLevel: 1}
	p := newPlayer()
	rep, err := scripted([]float64{0.1, 0.9}).Hack(p, target)
	if err != nil {
		t.Fatalf("Hack: %v", err)
	}
	if !rep.Success {
		t.Fatalf("roll 0.1 < 0.125 should succeed: %v", rep.Messages)
	}
	if p.Currency != models.StartingCurrency+1000 {
		t.Errorf("currency = %d", p.Currency)
	}
	if p.Experience != 500 {
		t.Errorf("experience = %d, want 500", p.Experience)
	}
	if p.Stats.HacksCompleted != 1 {
		t.Errorf("hacks completed = %d", p.Stats.HacksCompleted)
	}
	if len(p.Inventory) != 0 {
		t.Errorf("loot roll 0.9 should not drop an item: %v", p.Inventory)
	}
}

func TestHackFailureAboveThreshold(t *testing.T) {
	target := Target{Name: "Test Box", Reward: 1000, Difficulty: 2, RequiredLevel: 1}
	p := newPlayer()
	rep, err := scripted([]float64{0.2}).Hack(p, target)
	if err != nil {
		t.Fatalf("Hack: %v", err)
	}
	if rep.Success {
		t.Fatal("roll 0.2 >= 0.125 should fail")
	}
	// min(500, 1000/4)
	if p.Currency != 750 {
		t.Errorf("currency = %d, want 750", p.Currency)
	}
	if p.Stats.HacksCompleted != 0 || p.Experience != 0 {
		t.Error("a failed hack must not count or grant experience")
	}

	rich := newPlayer()
	rich.Currency = 8000
	scripted([]float64{0.99}).Hack(rich, target)
	if rich.Currency != 7500 {
		t.Errorf("penalty should be capped at %d, currency = %d", HackPenaltyCap, rich.Currency)
	}
}

func TestHackMasteryLootAndAchievement(t *testing.T) {
	target := Target{Name: "Vault", Reward: 40000, Difficulty: 2, RequiredLevel: 1}
	p := newPlayer()
	p.Skills[models.SkillHacking] = 5
	rep, err := scripted([]float64{0, 0.1}, 2).Hack(p, target)
	if err != nil || !rep.Success {
		t.Fatalf("Hack: %v %v", rep, err)
	}
	if p.Currency != models.StartingCurrency+60000 {
		t.Errorf("currency = %d, want mastery bonus applied", p.Currency)
	}
	if p.CountItem(ItemFirewall) != 1 {
		t.Errorf("expected firewall loot, inventory %v", p.Inventory)
	}
	if !p.HasAchievement(models.AchievementHackMaster) {
		t.Error("reward >= threshold should unlock Hack Master")
	}
	if p.Level != 2 {
		t.Errorf("30000 experience should level up exactly once, level %d", p.Level)
	}
}

func TestHackLevelGate(t *testing.T) {
	p := newPlayer()
	before := *p
	_, err := scripted([]float64{0}).Hack(p, Targets[len(Targets)-1])
	if !errors.Is(err, ErrLevelTooLow) {
		t.Fatalf("got %v, want ErrLevelTooLow", err)
	}
	if p.Currency != before.Currency || p.Stats.HacksCompleted != 0 {
		t.Error("gated hack mutated the player")
	}
}

func findEvent(t *testing.T, prefix string) Event {
	t.Helper()
	for _, ev := range Events {
		if strings.Contains(ev.Title, prefix) {
			return ev
		}
	}
	t.Fatalf("no event %q", prefix)
	return Event{}
}

func TestEventTable(t *testing.T) {
	if len(Events) != 8 {
		t.Fatalf("expected 8 events, got %d", len(Events))
	}
	for _, ev := range Events {
		if ev.Title == "" || ev.Text == "" || len(ev.Choices) != 3 {
			t.Errorf("malformed event %+v", ev)
		}
	}
	corp := findEvent(t, "CORPORATE OFFER")
	if f := corp.Choices[0].Reward.Faction2; f == nil || f.Faction != models.FactionHackers || f.Amount != -80 {
		t.Errorf("faction2 not decoded: %+v", corp.Choices[0].Reward)
	}
}

func TestResolveEventSkillCheck(t *testing.T) {
	raid := findEvent(t, "POLICE RAID")

	p := newPlayer()
	rep, err := scripted([]float64{0.1}).ResolveEvent(p, raid, 1)
	if err != nil || !rep.Success {
		t.Fatalf("stealth 1 gives 0.15, roll 0.1 should succeed: %v %v", rep, err)
	}
	if p.Currency != models.StartingCurrency+5000 || p.Factions[models.FactionGovernment] != -50 {
		t.Errorf("currency %d, government %d", p.Currency, p.Factions[models.FactionGovernment])
	}

	p = newPlayer()
	rep, err = scripted([]float64{0.5}).ResolveEvent(p, raid, 1)
	if err != nil || rep.Success {
		t.Fatalf("roll 0.5 should fail: %v %v", rep, err)
	}
	if p.Currency != 0 {
		t.Errorf("penalty must clamp at zero, currency %d", p.Currency)
	}
	if p.Stats.EventsCompleted != 1 {
		t.Errorf("events completed = %d", p.Stats.EventsCompleted)
	}
}

func TestResolveEventCostAndGamble(t *testing.T) {
	market := findEvent(t, "BLACK MARKET")

	p := newPlayer()
	if _, err := scripted(nil).ResolveEvent(p, market, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if p.Currency != models.StartingCurrency || p.Stats.EventsCompleted != 0 {
		t.Error("unaffordable choice mutated the player")
	}

	p.Currency = 20000
	if _, err := scripted([]float64{0.3}, 1).ResolveEvent(p, market, 2); err != nil {
		t.Fatalf("gamble: %v", err)
	}
	// 20000 - 10000 + 10000*3
	if p.Currency != 40000 {
		t.Errorf("winning gamble: currency %d, want 40000", p.Currency)
	}

	p.Currency = 20000
	scripted([]float64{0.7}).ResolveEvent(p, market, 2)
	if p.Currency != 10000 {
		t.Errorf("losing gamble: currency %d, want 10000", p.Currency)
	}
}

func TestResolveEventTwoFactions(t *testing.T) {
	p := newPlayer()
	if _, err := scripted(nil).ResolveEvent(p, findEvent(t, "CORPORATE OFFER"), 1); err != nil {
		t.Fatal(err)
	}
	if p.Factions[models.FactionCorporations] != 100 || p.Factions[models.FactionHackers] != -80 {
		t.Errorf("factions = %v", p.Factions)
	}
}

func TestResolveEventMagnet(t *testing.T) {
	p := newPlayer()
	p.Stats.EventsCompleted = models.EventMagnetEvents - 1
	rep, err := scripted(nil).ResolveEvent(p, findEvent(t, "HACKER MEETUP"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasAchievement(models.AchievementEventMagnet) {
		t.Errorf("expected Event Magnet, messages %v", rep.Messages)
	}
	if _, err := scripted(nil).ResolveEvent(p, Events[0], 4); !errors.Is(err, menu.ErrOutOfRange) {
		t.Errorf("choice 4: got %v", err)
	}
}

func TestAmbientEvent(t *testing.T) {
	if _, ok := scripted([]float64{0.1}).AmbientEvent(); !ok {
		t.Error("roll 0.1 should trigger an ambient event")
	}
	if _, ok := scripted([]float64{0.5}).AmbientEvent(); ok {
		t.Error("roll 0.5 should not trigger an ambient event")
	}
}

func TestFightBasicAttacksTerminate(t *testing.T) {
	boss := Boss{Name: "Drone", HP: 100, Damage: 10, Reward: 700, Level: 1, DropSkill: models.SkillStealth, DropAmount: 3}
	p := newPlayer()
	f, err := NewResolver(random.New(7), nil).StartFight(p, boss)
	if err != nil {
		t.Fatalf("StartFight: %v", err)
	}
	if f.PlayerHP != 110 {
		t.Fatalf("player HP = %d, want 110", f.PlayerHP)
	}
	for !f.Over() {
		before := f.BossHP
		if _, err := f.Act(ActionAttack); err != nil {
			t.Fatalf("Act: %v", err)
		}
		if f.BossHP >= before {
			t.Fatalf("boss HP did not decrease on turn %d", f.Turn-1)
		}
		if f.Turn > MaxTurns+1 {
			t.Fatal("fight exceeded the turn cap")
		}
	}
	if f.State != FightVictory {
		t.Fatalf("state = %v, want victory", f.State)
	}
	if p.Currency != models.StartingCurrency+700 || p.BossDefeats != 1 || p.Stats.BossesDefeated != 1 {
		t.Errorf("victory not applied: currency %d, defeats %d", p.Currency, p.BossDefeats)
	}
	if p.Skills[models.SkillStealth] != 4 {
		t.Errorf("skill drop not applied: stealth %d", p.Skills[models.SkillStealth])
	}
	if _, err := f.Act(ActionAttack); !errors.Is(err, ErrFightOver) {
		t.Errorf("acting after the end: got %v", err)
	}
}

func TestFightDefendSkipsRetaliation(t *testing.T) {
	boss := Boss{Name: "Wall", HP: 100, Damage: 11, Level: 1}
	f, _ := scripted(nil).StartFight(newPlayer(), boss)
	if _, err := f.Act(ActionDefend); err != nil {
		t.Fatal(err)
	}
	if f.PlayerHP != 110-5 || f.BossHP != 100 {
		t.Errorf("player %d boss %d", f.PlayerHP, f.BossHP)
	}
}

func TestFightFleeAndInvalid(t *testing.T) {
	p := newPlayer()
	f, _ := scripted(nil).StartFight(p, Boss{Name: "X", HP: 100, Damage: 10, Level: 1})
	if _, err := f.Act(Action(9)); !errors.Is(err, menu.ErrOutOfRange) {
		t.Errorf("invalid action: got %v", err)
	}
	if f.Turn != 1 || f.PlayerHP != 110 {
		t.Error("invalid action changed the fight")
	}
	f.Act(ActionFlee)
	if f.State != FightFled || p.Currency != models.StartingCurrency {
		t.Errorf("flee: state %v currency %d", f.State, p.Currency)
	}
}

func TestFightDrawAtTurnCap(t *testing.T) {
	f, _ := scripted(nil).StartFight(newPlayer(), Boss{Name: "Stone", HP: 1_000_000, Damage: 0, Level: 1})
	for i := 0; i < MaxTurns-1; i++ {
		f.Act(ActionDefend)
	}
	if f.Over() {
		t.Fatalf("fight ended early on turn %d", f.Turn)
	}
	f.Act(ActionDefend)
	if f.State != FightDraw {
		t.Errorf("state = %v, want draw", f.State)
	}
}

func TestFightDefeatPenalty(t *testing.T) {
	p := newPlayer()
	f, _ := scripted(nil).StartFight(p, Boss{Name: "Titan", HP: 1_000_000, Damage: 1000, Level: 1})
	f.Act(ActionAttack)
	if f.State != FightDefeat {
		t.Fatalf("state = %v, want defeat", f.State)
	}
	if p.Currency != 750 {
		t.Errorf("currency = %d, want 750", p.Currency)
	}
}

func TestFightLevelGate(t *testing.T) {
	if _, err := scripted(nil).StartFight(newPlayer(), Bosses[0]); !errors.Is(err, ErrLevelTooLow) {
		t.Errorf("got %v", err)
	}
}

func TestCraft(t *testing.T) {
	p := newPlayer()
	p.Currency = 6000
	p.Inventory = []string{ItemEncryptionKey, "🎸 Guitar", ItemExploit, ItemEncryptionKey, ItemEncryptionKey}
	rep, err := scripted(nil).Craft(p, Recipes[0])
	if err != nil || !rep.Success {
		t.Fatalf("Craft: %v %v", rep, err)
	}
	want := []string{"🎸 Guitar", ItemEncryptionKey, ItemAdvancedExploit}
	if !slices.Equal(p.Inventory, want) {
		t.Errorf("inventory = %v, want %v", p.Inventory, want)
	}
	if p.Currency != 1000 || p.Skills[models.SkillHacking] != 6 {
		t.Errorf("currency %d hacking %d", p.Currency, p.Skills[models.SkillHacking])
	}
	if len(p.CraftedItems) != 1 || p.Stats.ItemsCrafted != 1 {
		t.Errorf("crafted counters not updated")
	}
}

func TestCraftRejects(t *testing.T) {
	p := newPlayer()
	p.Inventory = []string{ItemEncryptionKey, ItemExploit}
	p.Currency = 6000
	if _, err := scripted(nil).Craft(p, Recipes[0]); !errors.Is(err, ErrMissingMaterials) {
		t.Errorf("got %v, want ErrMissingMaterials", err)
	}
	if len(p.Inventory) != 2 || p.Currency != 6000 {
		t.Error("failed craft mutated the player")
	}
	p.Inventory = append(p.Inventory, ItemEncryptionKey)
	p.Currency = 10
	if _, err := scripted(nil).Craft(p, Recipes[0]); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("got %v, want ErrInsufficientFunds", err)
	}
}

func TestCraftCrownAndMilestone(t *testing.T) {
	p := newPlayer()
	p.Currency = 100000
	p.Inventory = []string{ItemQuantumBooster, ItemNeuralNetwork, ItemPortalKey}
	p.CraftedItems = make([]string, models.CraftMasterCrafts-1)
	crown := Recipes[len(Recipes)-1]
	if _, err := scripted(nil).Craft(p, crown); err != nil {
		t.Fatal(err)
	}
	for _, s := range models.SkillNames {
		if p.Skills[s] != 11 {
			t.Errorf("%s = %d, want 11", s, p.Skills[s])
		}
	}
	if !p.HasAchievement(models.AchievementCraftMaster) {
		t.Error("expected Craft Master")
	}
}

func TestBuy(t *testing.T) {
	p := newPlayer()
	p.Currency = 6000
	item := ShopItems[6]
	if _, err := scripted(nil).Buy(p, item); err != nil {
		t.Fatal(err)
	}
	if p.Currency != 1000 || p.Skills[models.SkillHacking] != 6 || p.CountItem(item.Name) != 1 {
		t.Errorf("currency %d hacking %d inventory %v", p.Currency, p.Skills[models.SkillHacking], p.Inventory)
	}
	if p.Stats.ItemsBought != 1 || p.Stats.ItemsCollected != 1 {
		t.Errorf("bought %d collected %d", p.Stats.ItemsBought, p.Stats.ItemsCollected)
	}
	if !p.HasAchievement(models.AchievementBigSpender) {
		t.Error("expected Big Spender")
	}
	if _, err := scripted(nil).Buy(p, item); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("got %v", err)
	}
}

func TestMissionBoard(t *testing.T) {
	r := scripted(nil, 0, 0, 0)
	p := newPlayer()
	p.Stats.HacksCompleted = 10
	b := r.NewBoard(p)
	if len(b.Missions) != BoardSize {
		t.Fatalf("board has %d missions", len(b.Missions))
	}
	if b.Missions[0].Kind != MissionHack || b.Missions[2].Kind != MissionSkill {
		t.Fatalf("unexpected draw %v", b.Missions)
	}

	if _, err := r.Claim(b, p, 1); !errors.Is(err, ErrMissionIncomplete) {
		t.Errorf("got %v, want ErrMissionIncomplete", err)
	}
	p.Stats.HacksCompleted += 5
	if got := b.Progress(p, 0); got != 3 {
		t.Errorf("progress = %d, want capped at 3", got)
	}
	if _, err := r.Claim(b, p, 1); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if p.Currency != models.StartingCurrency+15000 || p.DailyMissionsCompleted != 1 || p.Stats.DailyMissions != 1 {
		t.Errorf("claim not credited: currency %d missions %d", p.Currency, p.DailyMissionsCompleted)
	}
	if _, err := r.Claim(b, p, 1); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second claim: got %v", err)
	}

	p.GrantSkill(models.SkillSocial, 1)
	if !b.Complete(p, 2) {
		t.Error("raising a skill should complete the skill mission")
	}
	if m := r.MissionMenu(b, p); !m.Options[0].Disabled || m.Options[2].Disabled {
		t.Errorf("menu disabled flags wrong: %+v", m.Options)
	}
}

func TestMissionBoardDistinct(t *testing.T) {
	b := NewResolver(random.New(3), nil).NewBoard(newPlayer())
	seen := map[MissionKind]bool{}
	for _, m := range b.Missions {
		if seen[m.Kind] {
			t.Errorf("mission %s drawn twice", m.Kind)
		}
		seen[m.Kind] = true
	}
}

func TestRun(t *testing.T) {
	r := scripted([]float64{0})
	p := newPlayer()
	rep, err := r.Run(KindHack, p, 1)
	if err != nil || !rep.Success {
		t.Fatalf("Run hack: %v %v", rep, err)
	}
	if _, err := r.Run(KindShop, p, len(ShopItems)+1); !errors.Is(err, menu.ErrOutOfRange) {
		t.Errorf("got %v", err)
	}
	if _, err := r.Run(Kind("dance"), p, 1); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v", err)
	}
}

func TestTables(t *testing.T) {
	if len(Targets) != 12 || len(Bosses) != 8 || len(Recipes) != 7 || len(ShopItems) != 12 || len(Missions) != 5 || len(LootItems) != 5 {
		t.Errorf("table sizes: targets %d bosses %d recipes %d shop %d missions %d loot %d",
			len(Targets), len(Bosses), len(Recipes), len(ShopItems), len(Missions), len(LootItems))
	}
	m := scripted(nil).TargetMenu(newPlayer())
	if m.Options[0].Disabled || !m.Options[1].Disabled {
		t.Errorf("level 1 should unlock only the first target")
	}
}
