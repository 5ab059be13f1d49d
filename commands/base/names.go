package base

import "fmt"

var commandAbbrev = map[uint32][2]string{
	CodeCapabilitiesExchange: {"CER", "CEA"},
	CodeReAuth:               {"RAR", "RAA"},
	CodeAccounting:           {"ACR", "ACA"},
	CodeCreditControl:        {"CCR", "CCA"},
	CodeAbortSession:         {"ASR", "ASA"},
	CodeSessionTermination:   {"STR", "STA"},
	CodeDeviceWatchdog:       {"DWR", "DWA"},
	CodeDisconnectPeer:       {"DPR", "DPA"},
	// 3GPP
	316: {"ULR", "ULA"},
	317: {"CLR", "CLA"},
	318: {"AIR", "AIA"},
	324: {"ECR", "ECA"},
	325: {"AAR", "AAA"},
}

// CommandName maps a command code to its request/answer pair, e.g. "CER/CEA".
func CommandName(code uint32) string {
	if n, ok := commandAbbrev[code]; ok {
		return n[0] + "/" + n[1]
	}
	return fmt.Sprintf("CMD_%d", code)
}

// MessageName names one direction of a command, e.g. "DWA".
func MessageName(code uint32, request bool) string {
	n, ok := commandAbbrev[code]
	switch {
	case !ok && request:
		return fmt.Sprintf("CMD_%d_REQ", code)
	case !ok:
		return fmt.Sprintf("CMD_%d_ANS", code)
	case request:
		return n[0]
	}
	return n[1]
}
