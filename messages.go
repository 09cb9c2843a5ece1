/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

// Server to client wire text. Every line ends in CRLF.
const (
	msgWelcome       = "Welcome to our word game. What is your name?\r\n"
	msgBadName       = "Name was not acceptable, please try again.\r\n"
	msgJoined        = "%s has just joined.\r\n"
	msgGoodbye       = "Goodbye %s\r\n"
	msgYourGuess     = "Your guess?\r\n"
	msgTurn          = "It's %s's turn.\r\n"
	msgNotYourTurn   = "It is not your turn.\r\n"
	msgInvalidGuess  = "Invalid guess, please try again.\r\n"
	msgAlreadyGuess  = "Letter was already guessed, please try again.\r\n"
	msgNotInWord     = "%c is not in the word\r\n"
	msgGuesses       = "%s guesses: %c\r\n"
	msgWordWas       = "The word was %s.\r\n"
	msgYouWin        = "Game over! You win!\r\n"
	msgWinner        = "Game over. %s won.\r\n"
	msgNoGuessesLeft = "No guesses left. Game over.\r\n"
	msgNewGame       = "\r\nLet's start a new game\r\n"
)
