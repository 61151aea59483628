package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/conflictpatch/internal/patch"
	"github.com/roach88/conflictpatch/internal/testutil"
)

func rule(t *testing.T, id patch.RuleID) patch.Rule {
	t.Helper()
	r, ok := Sequence().Lookup(id)
	require.True(t, ok, "rule %s should exist", id)
	return r
}

func TestSequence_Order(t *testing.T) {
	want := []patch.RuleID{
		InjectGameOverMessages,
		InjectCherryPickFlag,
		WrapResetWithTryCatch,
		WrapLoadHandlerWithTryCatch,
		RewriteBugHandler,
		InjectUIUpdateHelper,
		RetargetGameOverSignature,
		InjectRandomGameOverMessage,
		WrapNotificationWithTryCatch,
		AppendNotificationAutoDismiss,
		InjectErrorModalHelper,
		InjectCherryPickBranch,
		ParameterizeConflictResolution,
		WrapPowerupHandlerOpen,
	}
	assert.Equal(t, want, Sequence().IDs())
	assert.NoError(t, Sequence().CheckIDs())
}

func TestSequence_FreshSlice(t *testing.T) {
	a := Sequence()
	a[0].ID = "mutated"

	assert.Equal(t, InjectGameOverMessages, Sequence()[0].ID)
}

func TestSequence_EveryRuleHasSummaryAndEdits(t *testing.T) {
	for _, r := range Sequence() {
		t.Run(string(r.ID), func(t *testing.T) {
			assert.NotEmpty(t, r.Summary)
			assert.NotEmpty(t, r.Edits)
		})
	}
}

func TestRules_NoAnchorsIsByteIdentical(t *testing.T) {
	inputs := []string{
		"",
		"console.log('hello');\n",
		"function unrelated() {\n  return 1;\n}\n",
	}

	for _, r := range Sequence() {
		for _, in := range inputs {
			t.Run(string(r.ID), func(t *testing.T) {
				out, res := r.Apply(in)
				assert.Equal(t, in, out)
				assert.NotEqual(t, patch.OutcomeApplied, res.Outcome)
			})
		}
	}
}

func TestInjectGameOverMessages_ScenarioA(t *testing.T) {
	in := "const CONFLICT_MESSAGES = [\n  \"a\",\n  \"b\"\n];\n"

	out, res := rule(t, InjectGameOverMessages).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	assert.True(t, strings.HasPrefix(out, "const CONFLICT_MESSAGES = [\n  \"a\",\n  \"b\"\n];"))
	conflictAt := strings.Index(out, "const CONFLICT_MESSAGES")
	gameOverAt := strings.Index(out, "const GAME_OVER_MESSAGES = [")
	require.GreaterOrEqual(t, gameOverAt, 0)
	assert.Less(t, conflictAt, gameOverAt, "new array follows the original")

	block := out[gameOverAt:]
	block = block[:strings.Index(block, "];")]
	assert.Equal(t, 5, strings.Count(block, "\n  \""), "five literal entries")
	assert.Contains(t, block, `"Refusing to merge unrelated histories"`)
}

func TestInjectGameOverMessages_FirstClosingBracket(t *testing.T) {
	in := "const CONFLICT_MESSAGES = [\"a\"];\nconst OTHER = [\"b\"];\n"

	out, _ := rule(t, InjectGameOverMessages).Apply(in)

	assert.Less(t, strings.Index(out, "GAME_OVER_MESSAGES"), strings.Index(out, "const OTHER"),
		"insertion follows the first closing bracket after the keyword")
}

func TestInjectGameOverMessages_Guarded(t *testing.T) {
	in := "const CONFLICT_MESSAGES = [];\n// GAME_OVER_MESSAGES defined elsewhere\n"

	out, res := rule(t, InjectGameOverMessages).Apply(in)
	assert.Equal(t, in, out)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
}

func TestInjectCherryPickFlag_ScenarioB(t *testing.T) {
	in := "  gameState = {\n    level: 0,\n    solvedConflicts: [],\n  };\n"

	out, res := rule(t, InjectCherryPickFlag).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)
	assert.Contains(t, out, "solvedConflicts: [],\n      cherryPickActive: false,\n  };")

	again, res := rule(t, InjectCherryPickFlag).Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
}

func TestParameterizeConflictResolution_ScenarioC(t *testing.T) {
	in := "function resolveConflict() {\n  gameState.score += 100;\n}\n"

	out, res := rule(t, ParameterizeConflictResolution).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	assert.Contains(t, out, "function resolveConflict(autoResolved = false) {\n  try {")
	assert.Contains(t, out, "gameState.score += autoResolved ? 50 : 100;")
	assert.NotContains(t, out, "gameState.score += 100;")
	assert.NotContains(t, out, "function resolveConflict() {")
}

func TestWrapResetWithTryCatch_GuardedByProtectedBlock(t *testing.T) {
	// Both anchors would match; an unrelated try block elsewhere wins.
	in := "function other() {\n  try {\n  } catch (e) {}\n}\n" +
		"gameState = {\n  level: 0,\n};\n}\n"

	out, res := rule(t, WrapResetWithTryCatch).Apply(in)
	assert.Equal(t, in, out)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
	assert.Equal(t, `found "try {"`, res.Reason)
}

func TestWrapResetWithTryCatch_GuardedByOwnSignature(t *testing.T) {
	// The guard also holds when resetGame exists, so on a real game file the
	// rule never reaches its own anchors.
	in := "function resetGame() {\n  gameState = {\n    level: 0,\n  };\n}\n"

	out, res := rule(t, WrapResetWithTryCatch).Apply(in)
	assert.Equal(t, in, out)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
	assert.Equal(t, `found "function resetGame()"`, res.Reason)
}

func TestWrapResetWithTryCatch_AppliesCatchWithoutSignature(t *testing.T) {
	in := "const reset = function() {\n  gameState = {\n    level: 0,\n  };\n}\n"

	out, res := rule(t, WrapResetWithTryCatch).Apply(in)
	assert.Equal(t, patch.OutcomeApplied, res.Outcome)
	assert.True(t, res.Partial(), "signature anchor absent, catch anchor present")
	assert.Contains(t, out, "  };\n  } catch (error) {\n    console.error(\"Error resetting game:\", error);")
	assert.Contains(t, out, `showErrorModal("Game Reset Error"`)
}

func TestWrapLoadHandlerWithTryCatch(t *testing.T) {
	in := "window.onload = function() {\n  start();\n  setupEventListeners(ctx, canvas);\n};\n"

	out, res := rule(t, WrapLoadHandlerWithTryCatch).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	want := "window.onload = function() {\n  try {\n  start();\n  setupEventListeners(ctx, canvas);\n" +
		"  } catch (error) {\n    console.error(\"Error initializing game:\", error);\n" +
		"    showErrorModal(\"Initialization Error\", error.message);\n  }\n};\n"
	assert.Equal(t, want, out)
}

func TestWrapLoadHandlerWithTryCatch_RequiresHandler(t *testing.T) {
	in := "setupEventListeners(ctx, canvas);\n};\n"

	out, res := rule(t, WrapLoadHandlerWithTryCatch).Apply(in)
	assert.Equal(t, in, out)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
	assert.Equal(t, `missing "window.onload = function() {"`, res.Reason)
}

func TestRewriteBugHandler_ReplacesWholeBody(t *testing.T) {
	in := "function handleBug() {\n  gameState.lives--;\n  if (gameState.lives <= 0) {\n    gameOver();\n  }\n}\n"

	out, res := rule(t, RewriteBugHandler).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	assert.True(t, strings.HasPrefix(out, "function handleBug(message) {\n  try {\n    gameState.lives--;"))
	assert.Contains(t, out, "gameState.score = Math.max(0, gameState.score - 50);")
	assert.Contains(t, out, "updateUIElements();")
	assert.Contains(t, out, "gameState.playerX = currentLevel.playerStart.x;")
	assert.Contains(t, out, "      gameOver(message);\n  }\n}\n")
	assert.Equal(t, 1, strings.Count(out, "gameState.lives--;"), "old body is replaced, not kept")

	again, res := rule(t, RewriteBugHandler).Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, patch.OutcomeNoAnchor, res.Outcome)
}

func TestInjectUIUpdateHelper_AfterStartGame(t *testing.T) {
	in := "function startGame(ctx, canvas) {\n  resetGame();\n}\n\nfunction next() {}\n"

	out, res := rule(t, InjectUIUpdateHelper).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	start := strings.Index(out, "function startGame")
	helper := strings.Index(out, "function updateUIElements() {")
	next := strings.Index(out, "function next()")
	assert.True(t, start < helper && helper < next)
	assert.Contains(t, out, "}\n\n\nfunction updateUIElements() {")
}

func TestInjectRandomGameOverMessage(t *testing.T) {
	in := "function gameOver(message) {\n  const modal = document.getElementById('gameOverModal');\n}\n"

	out, res := rule(t, InjectRandomGameOverMessage).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	assert.Contains(t, out, "document.getElementById('gameOverMessage')")
	assert.Contains(t, out, "document.getElementById('finalScore')")
	assert.Contains(t, out, "if (!message) {\n        message = GAME_OVER_MESSAGES[Math.floor(Math.random() * GAME_OVER_MESSAGES.length)];")

	again, res := rule(t, InjectRandomGameOverMessage).Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, patch.OutcomeAlreadyApplied, res.Outcome)
}

func TestAppendNotificationAutoDismiss_Delays(t *testing.T) {
	in := "  document.body.appendChild(notificationDiv);\n}\n"

	out, res := rule(t, AppendNotificationAutoDismiss).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	fade := strings.Index(out, "notificationDiv.style.opacity = '0';")
	remove := strings.Index(out, "notificationDiv.remove();")
	assert.True(t, fade > 0 && fade < remove, "fade happens before removal")
	assert.Contains(t, out, "}, 300);\n    }, 3000);")
}

func TestInjectErrorModalHelper_BeforeSetupEventListeners(t *testing.T) {
	in := "function a() {}\n\nfunction setupEventListeners(ctx, canvas) {\n}\n"

	out, res := rule(t, InjectErrorModalHelper).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	helper := strings.Index(out, "function showErrorModal(title, message) {")
	setup := strings.Index(out, "function setupEventListeners(ctx, canvas) {")
	assert.True(t, helper > 0 && helper < setup)
	assert.Contains(t, out, "alert(`Error: ${title}\\n${message}`);")
	assert.Contains(t, out, "errorModal.classList.remove('hidden');")

	_, res = rule(t, InjectErrorModalHelper).Apply(out)
	assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome)
}

func TestInjectCherryPickBranch(t *testing.T) {
	in := "function handleConflict() {\n  const conflictKey = `${gameState.playerX},${gameState.playerY}`;\n  show();\n}\n"

	out, res := rule(t, InjectCherryPickBranch).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)
	assert.Equal(t, []patch.EditStatus{patch.EditApplied, patch.EditApplied}, res.Edits)

	assert.Contains(t, out, "function handleConflict() {\n  try {")
	branch := out[strings.Index(out, "if (gameState.cherryPickActive) {"):]
	assert.Less(t, strings.Index(branch, "resolveConflict(true);"), strings.Index(branch, "gameState.cherryPickActive = false;"))
	assert.Less(t, strings.Index(branch, "showNotification(\"Cherry-pick\""), strings.Index(branch, "return;"))

	again, res := rule(t, InjectCherryPickBranch).Apply(out)
	assert.Equal(t, out, again)
	assert.Equal(t, patch.OutcomeAlreadyApplied, res.Outcome)
}

func TestWrapPowerupHandlerOpen_LeavesScopeOpen(t *testing.T) {
	in := "function handlePowerup() {\n  gameState.score += 25;\n}\n"

	out, res := rule(t, WrapPowerupHandlerOpen).Apply(in)
	require.Equal(t, patch.OutcomeApplied, res.Outcome)

	assert.Equal(t, "function handlePowerup() {\n  try {\n  gameState.score += 25;\n}\n", out)
	assert.NotContains(t, out, "catch", "no closing point is guessed")
	assert.NotEmpty(t, rule(t, WrapPowerupHandlerOpen).Notes)
}

func TestSequence_EveryRuleMatchesPristineGame(t *testing.T) {
	// Run rule by rule so each sees the output of its predecessors.
	buf := testutil.GameSource
	for _, r := range Sequence() {
		var res patch.Result
		buf, res = r.Apply(buf)

		if r.ID == WrapResetWithTryCatch {
			assert.Equal(t, patch.OutcomeSkippedByGuard, res.Outcome, r.ID)
			continue
		}
		assert.Equal(t, patch.OutcomeApplied, res.Outcome, r.ID)
		assert.False(t, res.Partial(), r.ID)
	}
}
