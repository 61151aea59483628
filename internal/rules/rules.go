// Package rules defines the fixed patch sequence for the git-conflict-game
// source file.
//
// The anchors below are an implicit contract with the structure of
// simple-game.js: function names, the gameState literal and DOM element
// ids. If upstream renames any of them the matching rule degrades to a
// no-op and shows up as "no-anchor" in the run report.
package rules

import "github.com/roach88/conflictpatch/internal/patch"

// TargetFile is the file patched inside the game directory.
const TargetFile = "simple-game.js"

// Rule IDs in sequence order.
const (
	InjectGameOverMessages         patch.RuleID = "inject-game-over-messages"
	InjectCherryPickFlag           patch.RuleID = "inject-cherry-pick-flag"
	WrapResetWithTryCatch          patch.RuleID = "wrap-reset-with-try-catch"
	WrapLoadHandlerWithTryCatch    patch.RuleID = "wrap-load-handler-with-try-catch"
	RewriteBugHandler              patch.RuleID = "rewrite-bug-handler"
	InjectUIUpdateHelper           patch.RuleID = "inject-ui-update-helper"
	RetargetGameOverSignature      patch.RuleID = "retarget-game-over-signature"
	InjectRandomGameOverMessage    patch.RuleID = "inject-random-game-over-message"
	WrapNotificationWithTryCatch   patch.RuleID = "wrap-notification-with-try-catch"
	AppendNotificationAutoDismiss  patch.RuleID = "append-notification-auto-dismiss"
	InjectErrorModalHelper         patch.RuleID = "inject-error-modal-helper"
	InjectCherryPickBranch         patch.RuleID = "inject-cherry-pick-branch"
	ParameterizeConflictResolution patch.RuleID = "parameterize-conflict-resolution"
	WrapPowerupHandlerOpen         patch.RuleID = "wrap-powerup-handler-open"
)

// ProtectedBlockMarker is the generic marker both wrap guards check.
// Any occurrence anywhere in the file suppresses both of them.
const ProtectedBlockMarker = "try {"

var (
	conflictMessagesDecl = patch.Pattern("CONFLICT_MESSAGES declaration",
		`const CONFLICT_MESSAGES[\s\S]*?\];`)

	solvedConflictsInit = patch.Pattern("gameState init through solvedConflicts",
		`gameState = \{\n[\s\S]*?solvedConflicts: \[\],`)

	resetGameSignature = patch.Literal("resetGame signature", "function resetGame() {\n")

	resetGameStateEnd = patch.Pattern("gameState assignment closing resetGame",
		`(gameState = \{[\s\S]*?\};)\n\}`)

	onloadSignature = patch.Literal("window.onload signature", "window.onload = function() {\n")

	onloadEnd = patch.Pattern("setupEventListeners call closing window.onload",
		`(setupEventListeners\(ctx, canvas\);)\n\};`)

	handleBugThroughGameOver = patch.Pattern("handleBug through gameOver call",
		`function handleBug\(\) \{[\s\S]*?if \(gameState\.lives <= 0\) \{\n    gameOver\(\);`)

	startGameBody = patch.Pattern("startGame body and blank line",
		`(function startGame\(ctx, canvas\) \{[\s\S]*?\})\n\n`)

	gameOverSignatureAnchor = patch.Literal("gameOver signature", "function gameOver() {")

	gameOverModalLookup = patch.Literal("gameOverModal lookup",
		"const modal = document.getElementById('gameOverModal');")

	showNotificationSignature = patch.Literal("showNotification signature",
		"function showNotification(title, message) {")

	notificationAppend = patch.Literal("notification append",
		"document.body.appendChild(notificationDiv);")

	setupEventListenersSignature = patch.Literal("setupEventListeners signature",
		"function setupEventListeners(ctx, canvas) {")

	handleConflictSignature = patch.Literal("handleConflict signature", "function handleConflict() {")

	conflictKeyAnchor = patch.Literal("conflictKey statement", conflictKeyStatement)

	resolveConflictSignatureAnchor = patch.Literal("resolveConflict signature", "function resolveConflict() {")

	fixedConflictAward = patch.Literal("fixed conflict award", "gameState.score += 100;")

	handlePowerupSignature = patch.Literal("handlePowerup signature", "function handlePowerup() {")
)

// Sequence returns the full enhancement set in application order.
//
// The order is load-bearing. Rules 1 and 2 must run before anything that
// mentions their guard markers (rules 8 and 12), and the two wrap rules (3
// and 4) must run before every rule that opens a try block. A fresh slice is
// returned on each call.
func Sequence() patch.Sequence {
	return patch.Sequence{
		{
			ID:      InjectGameOverMessages,
			Summary: "Added random game over messages related to Git concepts",
			Guard:   patch.SkipIf("GAME_OVER_MESSAGES"),
			Edits:   []patch.Edit{patch.After(conflictMessagesDecl, gameOverMessages)},
		},
		{
			ID:      InjectCherryPickFlag,
			Summary: "Added cherryPickActive flag to the game state",
			Guard:   patch.SkipIf("cherryPickActive"),
			Edits:   []patch.Edit{patch.After(solvedConflictsInit, cherryPickField)},
		},
		{
			ID:      WrapResetWithTryCatch,
			Summary: "Wrapped resetGame in try/catch",
			Notes:   "guard is suppressed by any try block in the file and by the resetGame signature itself",
			Guard:   patch.SkipIf(ProtectedBlockMarker, "function resetGame()"),
			Edits: []patch.Edit{
				patch.After(resetGameSignature, tryOpenLine),
				patch.AfterGroup(resetGameStateEnd, 1, resetCatch),
			},
		},
		{
			ID:      WrapLoadHandlerWithTryCatch,
			Summary: "Wrapped window.onload in try/catch",
			Notes:   "guard is suppressed by any try block in the file",
			Guard:   patch.SkipIf(ProtectedBlockMarker).Requiring("window.onload = function() {"),
			Edits: []patch.Edit{
				patch.After(onloadSignature, tryOpenLine),
				patch.AfterGroup(onloadEnd, 1, onloadCatch),
			},
		},
		{
			ID:      RewriteBugHandler,
			Summary: "Added better UI feedback when bugs are encountered",
			Edits:   []patch.Edit{patch.With(handleBugThroughGameOver, handleBugBody)},
		},
		{
			ID:      InjectUIUpdateHelper,
			Summary: "Added updateUIElements helper",
			Guard:   patch.SkipIf("function updateUIElements()"),
			Edits:   []patch.Edit{patch.After(startGameBody, updateUIElementsFunc)},
		},
		{
			ID:      RetargetGameOverSignature,
			Summary: "gameOver now accepts a message and handles errors",
			Edits:   []patch.Edit{patch.With(gameOverSignatureAnchor, gameOverSignature)},
		},
		{
			ID:      InjectRandomGameOverMessage,
			Summary: "gameOver shows a random message when none is given",
			Edits:   []patch.Edit{patch.After(gameOverModalLookup, randomGameOverMessage)},
		},
		{
			ID:      WrapNotificationWithTryCatch,
			Summary: "Added error handling to showNotification",
			Edits:   []patch.Edit{patch.After(showNotificationSignature, tryOpen)},
		},
		{
			ID:      AppendNotificationAutoDismiss,
			Summary: "Added improved notification system with animations",
			Edits:   []patch.Edit{patch.After(notificationAppend, notificationAutoDismiss)},
		},
		{
			ID:      InjectErrorModalHelper,
			Summary: "Added showErrorModal helper",
			Guard:   patch.SkipIf("function showErrorModal("),
			Edits:   []patch.Edit{patch.Before(setupEventListenersSignature, showErrorModalFunc)},
		},
		{
			ID:      InjectCherryPickBranch,
			Summary: "Added cherry-pick powerup functionality for auto-resolving conflicts",
			Edits: []patch.Edit{
				patch.After(handleConflictSignature, tryOpen),
				patch.After(conflictKeyAnchor, cherryPickBranch),
			},
		},
		{
			ID:      ParameterizeConflictResolution,
			Summary: "resolveConflict awards half points for auto-resolved conflicts",
			Edits: []patch.Edit{
				patch.With(resolveConflictSignatureAnchor, resolveConflictSignature),
				patch.With(fixedConflictAward, autoResolvedAward),
			},
		},
		{
			ID:      WrapPowerupHandlerOpen,
			Summary: "Added error handling to handlePowerup",
			Notes:   "opens a try block without closing it; the matching catch must already exist in the file",
			Edits:   []patch.Edit{patch.After(handlePowerupSignature, tryOpen)},
		},
	}
}
