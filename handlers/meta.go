package handlers

import (
	"net/http"

	"stellar-delivery-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order state machine for documentation
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.AllOrderTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Order lifecycle state machine",
	})
}
