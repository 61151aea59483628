package rules

// Inserted source text. Leading and trailing newlines are significant: the
// insert edits compare these exact strings against the text at their
// insertion point to stay idempotent.

const gameOverMessages = `

// Game over messages
const GAME_OVER_MESSAGES = [
  "Your repository has become corrupted!",
  "Too many merge conflicts - repository abandoned!",
  "Fatal: cannot rebase onto multiple branches",
  "Error: detached HEAD state cannot be resolved",
  "Refusing to merge unrelated histories"
];
`

const cherryPickField = `
      cherryPickActive: false,`

const tryOpen = `
  try {`

const tryOpenLine = "  try {\n"

const resetCatch = `
  } catch (error) {
    console.error("Error resetting game:", error);
    showErrorModal("Game Reset Error", "Could not reset the game state. Please refresh the page.");
  }`

const onloadCatch = `
  } catch (error) {
    console.error("Error initializing game:", error);
    showErrorModal("Initialization Error", error.message);
  }`

const handleBugBody = `function handleBug(message) {
  try {
    gameState.lives--;
    gameState.score = Math.max(0, gameState.score - 50);

    // Update UI
    updateUIElements();

    // Reset position
    const currentLevel = LEVELS[gameState.level];
    gameState.playerX = currentLevel.playerStart.x;
    gameState.playerY = currentLevel.playerStart.y;

    if (gameState.lives <= 0) {
      gameOver(message);`

const updateUIElementsFunc = `
function updateUIElements() {
  try {
    document.getElementById('score').textContent = gameState.score;
    document.getElementById('level').textContent = gameState.level + 1;
    document.getElementById('lives').textContent = gameState.lives;
  } catch (error) {
    console.error("Error updating UI elements:", error);
  }
}

`

const gameOverSignature = `function gameOver(message) {
  try {`

const randomGameOverMessage = `
    const msgElement = document.getElementById('gameOverMessage');
    const scoreElement = document.getElementById('finalScore');

    if (modal && scoreElement) {
      // Set a random game over message if not specified
      if (!message) {
        message = GAME_OVER_MESSAGES[Math.floor(Math.random() * GAME_OVER_MESSAGES.length)];
      }

      if (msgElement) {
        msgElement.textContent = message;
      }`

const notificationAutoDismiss = `

    // Remove after 3 seconds
    setTimeout(() => {
      notificationDiv.style.opacity = '0';
      notificationDiv.style.transform = 'translateX(100%)';

      // Remove from DOM after animation
      setTimeout(() => {
        notificationDiv.remove();
      }, 300);
    }, 3000);`

const showErrorModalFunc = `
function showErrorModal(title, message) {
  try {
    // Create error modal if it doesn't exist
    let errorModal = document.getElementById('errorModal');

    if (!errorModal) {
      errorModal = document.createElement('div');
      errorModal.id = 'errorModal';
      errorModal.className = 'modal';

      const content = document.createElement('div');
      content.className = 'modal-content';

      const heading = document.createElement('h2');
      heading.textContent = title;
      heading.style.color = '#f85149';

      const text = document.createElement('p');
      text.textContent = message;

      const button = document.createElement('button');
      button.textContent = 'OK';
      button.onclick = function() {
        errorModal.classList.add('hidden');
      };

      content.appendChild(heading);
      content.appendChild(text);
      content.appendChild(button);
      errorModal.appendChild(content);

      document.body.appendChild(errorModal);
    } else {
      // Update existing modal
      errorModal.querySelector('h2').textContent = title;
      errorModal.querySelector('p').textContent = message;
      errorModal.classList.remove('hidden');
    }
  } catch (error) {
    console.error("Failed to show error modal:", error);
    alert(` + "`Error: ${title}\\n${message}`" + `);
  }
}


`

const conflictKeyStatement = "const conflictKey = `${gameState.playerX},${gameState.playerY}`;"

const cherryPickBranch = `

    // Check if cherry-pick is active
    if (gameState.cherryPickActive) {
      // Auto-resolve conflict
      resolveConflict(true);
      gameState.cherryPickActive = false;
      showNotification("Cherry-pick", "Conflict automatically resolved!");
      return;
    }`

const resolveConflictSignature = `function resolveConflict(autoResolved = false) {
  try {`

const autoResolvedAward = "gameState.score += autoResolved ? 50 : 100;"
