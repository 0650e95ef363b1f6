package server

import (
	"encoding/xml"
	"fmt"
)

// TwiML document rendered back to the telephony provider. Only the elements
// the webhook emits are modelled.
type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Gather  *twimlGather `xml:"Gather,omitempty"`
	Say     []twimlSay   `xml:"Say,omitempty"`
	Hangup  *struct{}    `xml:"Hangup,omitempty"`
}

type twimlGather struct {
	Input         string     `xml:"input,attr"`
	Action        string     `xml:"action,attr"`
	Method        string     `xml:"method,attr"`
	Timeout       int        `xml:"timeout,attr"`
	SpeechTimeout string     `xml:"speechTimeout,attr"`
	Say           []twimlSay `xml:"Say"`
}

type twimlSay struct {
	Voice string `xml:"voice,attr,omitempty"`
	Text  string `xml:",chardata"`
}

const noInputFarewell = "We didn't receive any input. Thank you for calling, goodbye!"

// gatherResponse speaks the prompt and keeps listening for the next turn.
func gatherResponse(prompt, action string) twimlResponse {
	return twimlResponse{
		Gather: &twimlGather{
			Input:         "speech dtmf",
			Action:        action,
			Method:        "POST",
			Timeout:       5,
			SpeechTimeout: "auto",
			Say:           []twimlSay{{Text: prompt}},
		},
		Say:    []twimlSay{{Text: noInputFarewell}},
		Hangup: &struct{}{},
	}
}

// hangupResponse speaks the prompt and ends the call.
func hangupResponse(prompt string) twimlResponse {
	return twimlResponse{
		Say:    []twimlSay{{Text: prompt}},
		Hangup: &struct{}{},
	}
}

// renderTwiML serializes a response document with the XML declaration.
func renderTwiML(resp twimlResponse) ([]byte, error) {
	body, err := xml.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal twiml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
