package normalize

import "github.com/nfarrow/recoup/internal/model"

// eventTypeSynonyms maps collapsed raw type strings onto canonical event
// types. Keys are matched after lowercasing, trimming and collapsing
// separators to underscores. Anything not listed here and not already
// canonical becomes a plain communication.
var eventTypeSynonyms = map[string]model.EventType{
	"agreement":         model.EventContract,
	"contract_signed":   model.EventContract,
	"purchase_order":    model.EventContract,
	"po_issued":         model.EventContract,
	"engagement":        model.EventContract,

	"delivery":          model.EventServiceDelivered,
	"delivered":         model.EventServiceDelivered,
	"goods_delivered":   model.EventServiceDelivered,
	"work_completed":    model.EventServiceDelivered,
	"work_done":         model.EventServiceDelivered,
	"services_rendered": model.EventServiceDelivered,

	"invoiced":       model.EventInvoice,
	"invoice_sent":   model.EventInvoice,
	"invoice_issued": model.EventInvoice,
	"invoice_raised": model.EventInvoice,
	"bill":           model.EventInvoice,
	"billed":         model.EventInvoice,

	"due":          model.EventPaymentDue,
	"due_date":     model.EventPaymentDue,
	"payment_deadline": model.EventPaymentDue,

	"partial_payment":  model.EventPartPayment,
	"payment_received": model.EventPartPayment,
	"paid_in_part":     model.EventPartPayment,

	"reminder":          model.EventChaser,
	"chase":             model.EventChaser,
	"chased":            model.EventChaser,
	"follow_up":         model.EventChaser,
	"followup":          model.EventChaser,
	"payment_reminder":  model.EventChaser,
	"overdue_notice":    model.EventChaser,

	"lba":                  model.EventLBASent,
	"letter_before_action": model.EventLBASent,
	"letter_before_claim":  model.EventLBASent,
	"pre_action_letter":    model.EventLBASent,
	"final_demand":         model.EventLBASent,
	"final_notice":         model.EventLBASent,
	"statutory_demand":     model.EventLBASent,
	"7_day_notice":         model.EventLBASent,
	"14_day_notice":        model.EventLBASent,
	"demand_letter":        model.EventLBASent,

	"acknowledgement": model.EventAcknowledgment,
	"acknowledged":    model.EventAcknowledgment,
	"admission":       model.EventAcknowledgment,
	"debt_admitted":   model.EventAcknowledgment,
	"response":        model.EventAcknowledgment,

	"email":      model.EventCommunication,
	"phone_call": model.EventCommunication,
	"call":       model.EventCommunication,
	"letter":     model.EventCommunication,
	"message":    model.EventCommunication,
}

// countyByTwoLetterPrefix maps UK postcode area codes to ceremonial counties.
// The longest (two letter) match wins; countyByOneLetterPrefix applies only
// when no two-letter entry matches.
var countyByTwoLetterPrefix = map[string]string{
	"AB": "Aberdeenshire",
	"AL": "Hertfordshire",
	"BA": "Somerset",
	"BB": "Lancashire",
	"BD": "West Yorkshire",
	"BH": "Dorset",
	"BL": "Greater Manchester",
	"BN": "East Sussex",
	"BR": "Greater London",
	"BS": "Bristol",
	"CA": "Cumbria",
	"CB": "Cambridgeshire",
	"CF": "South Glamorgan",
	"CH": "Cheshire",
	"CM": "Essex",
	"CO": "Essex",
	"CR": "Greater London",
	"CT": "Kent",
	"CV": "Warwickshire",
	"CW": "Cheshire",
	"DA": "Kent",
	"DE": "Derbyshire",
	"DH": "County Durham",
	"DL": "County Durham",
	"DN": "South Yorkshire",
	"DT": "Dorset",
	"DY": "West Midlands",
	"EH": "Midlothian",
	"EN": "Hertfordshire",
	"EX": "Devon",
	"FY": "Lancashire",
	"GL": "Gloucestershire",
	"GU": "Surrey",
	"HA": "Greater London",
	"HD": "West Yorkshire",
	"HG": "North Yorkshire",
	"HP": "Buckinghamshire",
	"HR": "Herefordshire",
	"HU": "East Riding of Yorkshire",
	"HX": "West Yorkshire",
	"IG": "Essex",
	"IP": "Suffolk",
	"KT": "Surrey",
	"LA": "Lancashire",
	"LE": "Leicestershire",
	"LN": "Lincolnshire",
	"LS": "West Yorkshire",
	"LU": "Bedfordshire",
	"ME": "Kent",
	"MK": "Buckinghamshire",
	"NE": "Tyne and Wear",
	"NG": "Nottinghamshire",
	"NN": "Northamptonshire",
	"NR": "Norfolk",
	"OL": "Greater Manchester",
	"OX": "Oxfordshire",
	"PE": "Cambridgeshire",
	"PL": "Devon",
	"PO": "Hampshire",
	"PR": "Lancashire",
	"RG": "Berkshire",
	"RH": "West Sussex",
	"SG": "Hertfordshire",
	"SK": "Cheshire",
	"SL": "Berkshire",
	"SN": "Wiltshire",
	"SO": "Hampshire",
	"SP": "Wiltshire",
	"SR": "Tyne and Wear",
	"SS": "Essex",
	"ST": "Staffordshire",
	"TA": "Somerset",
	"TN": "Kent",
	"TQ": "Devon",
	"TR": "Cornwall",
	"TS": "North Yorkshire",
	"UB": "Greater London",
	"WA": "Cheshire",
	"WD": "Hertfordshire",
	"WF": "West Yorkshire",
	"WN": "Greater Manchester",
	"WR": "Worcestershire",
	"WS": "West Midlands",
	"WV": "West Midlands",
	"YO": "North Yorkshire",
}

// countyByOneLetterPrefix covers the single-letter London and metropolitan
// postcode areas
var countyByOneLetterPrefix = map[string]string{
	"B": "West Midlands",
	"E": "Greater London",
	"G": "Lanarkshire",
	"L": "Merseyside",
	"M": "Greater Manchester",
	"N": "Greater London",
	"S": "South Yorkshire",
	"W": "Greater London",
}

// companySuffixes are name fragments that indicate a business rather than an
// individual
var companySuffixes = []string{
	"ltd", "limited", "plc", "llp", "inc", "corp", "trading as", "t/a",
}
