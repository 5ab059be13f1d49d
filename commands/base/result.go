package base

import "fmt"

// ResultCode represents Diameter result codes
type ResultCode uint32

const (
	// Success
	ResultCodeSuccess        ResultCode = 2001
	ResultCodeLimitedSuccess ResultCode = 2002

	// Protocol errors
	ResultCodeCommandUnsupported     ResultCode = 3001
	ResultCodeUnableToDeliver        ResultCode = 3002
	ResultCodeRealmNotServed         ResultCode = 3003
	ResultCodeTooBusy                ResultCode = 3004
	ResultCodeLoopDetected           ResultCode = 3005
	ResultCodeRedirectIndication     ResultCode = 3006
	ResultCodeApplicationUnsupported ResultCode = 3007
	ResultCodeInvalidHDRBits         ResultCode = 3008
	ResultCodeInvalidAVPBits         ResultCode = 3009
	ResultCodeUnknownPeer            ResultCode = 3010

	// Transient failures
	ResultCodeAuthenticationRejected ResultCode = 4001
	ResultCodeOutOfSpace             ResultCode = 4002
	ResultCodeElectionLost           ResultCode = 4003

	// Permanent failures
	ResultCodeAVPUnsupported        ResultCode = 5001
	ResultCodeUnknownSessionID      ResultCode = 5002
	ResultCodeAuthorizationRejected ResultCode = 5003
	ResultCodeInvalidAVPValue       ResultCode = 5004
	ResultCodeMissingAVP            ResultCode = 5005
	ResultCodeResourcesExceeded     ResultCode = 5006
	ResultCodeContradictingAVPs     ResultCode = 5007
	ResultCodeAVPNotAllowed         ResultCode = 5008
	ResultCodeAVPOccursTooManyTimes ResultCode = 5009
	ResultCodeNoCommonApplication   ResultCode = 5010
	ResultCodeUnsupportedVersion    ResultCode = 5011
	ResultCodeUnableToComply        ResultCode = 5012
	ResultCodeInvalidBitInHeader    ResultCode = 5013
	ResultCodeInvalidAVPLength      ResultCode = 5014
	ResultCodeInvalidMessageLength  ResultCode = 5015
	ResultCodeInvalidAVPBitCombo    ResultCode = 5016
	ResultCodeNoCommonSecurity      ResultCode = 5017
)

var resultCodeNames = map[ResultCode]string{
	ResultCodeSuccess:                "DIAMETER_SUCCESS",
	ResultCodeLimitedSuccess:         "DIAMETER_LIMITED_SUCCESS",
	ResultCodeCommandUnsupported:     "DIAMETER_COMMAND_UNSUPPORTED",
	ResultCodeUnableToDeliver:        "DIAMETER_UNABLE_TO_DELIVER",
	ResultCodeRealmNotServed:         "DIAMETER_REALM_NOT_SERVED",
	ResultCodeTooBusy:                "DIAMETER_TOO_BUSY",
	ResultCodeLoopDetected:           "DIAMETER_LOOP_DETECTED",
	ResultCodeRedirectIndication:     "DIAMETER_REDIRECT_INDICATION",
	ResultCodeApplicationUnsupported: "DIAMETER_APPLICATION_UNSUPPORTED",
	ResultCodeInvalidHDRBits:         "DIAMETER_INVALID_HDR_BITS",
	ResultCodeInvalidAVPBits:         "DIAMETER_INVALID_AVP_BITS",
	ResultCodeUnknownPeer:            "DIAMETER_UNKNOWN_PEER",
	ResultCodeAuthenticationRejected: "DIAMETER_AUTHENTICATION_REJECTED",
	ResultCodeOutOfSpace:             "DIAMETER_OUT_OF_SPACE",
	ResultCodeElectionLost:           "ELECTION_LOST",
	ResultCodeAVPUnsupported:         "DIAMETER_AVP_UNSUPPORTED",
	ResultCodeUnknownSessionID:       "DIAMETER_UNKNOWN_SESSION_ID",
	ResultCodeAuthorizationRejected:  "DIAMETER_AUTHORIZATION_REJECTED",
	ResultCodeInvalidAVPValue:        "DIAMETER_INVALID_AVP_VALUE",
	ResultCodeMissingAVP:             "DIAMETER_MISSING_AVP",
	ResultCodeResourcesExceeded:      "DIAMETER_RESOURCES_EXCEEDED",
	ResultCodeContradictingAVPs:      "DIAMETER_CONTRADICTING_AVPS",
	ResultCodeAVPNotAllowed:          "DIAMETER_AVP_NOT_ALLOWED",
	ResultCodeAVPOccursTooManyTimes:  "DIAMETER_AVP_OCCURS_TOO_MANY_TIMES",
	ResultCodeNoCommonApplication:    "DIAMETER_NO_COMMON_APPLICATION",
	ResultCodeUnsupportedVersion:     "DIAMETER_UNSUPPORTED_VERSION",
	ResultCodeUnableToComply:         "DIAMETER_UNABLE_TO_COMPLY",
	ResultCodeInvalidBitInHeader:     "DIAMETER_INVALID_BIT_IN_HEADER",
	ResultCodeInvalidAVPLength:       "DIAMETER_INVALID_AVP_LENGTH",
	ResultCodeInvalidMessageLength:   "DIAMETER_INVALID_MESSAGE_LENGTH",
	ResultCodeInvalidAVPBitCombo:     "DIAMETER_INVALID_AVP_BIT_COMBO",
	ResultCodeNoCommonSecurity:       "DIAMETER_NO_COMMON_SECURITY",
}

// IsSuccess reports whether the code is in the 2xxx class.
func (r ResultCode) IsSuccess() bool {
	return r >= 2000 && r < 3000
}

// IsProtocolError reports whether the code is in the 3xxx class, which is
// answered with the E bit set.
func (r ResultCode) IsProtocolError() bool {
	return r >= 3000 && r < 4000
}

func (r ResultCode) String() string {
	if s, ok := resultCodeNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RESULT_CODE_%d", uint32(r))
}
