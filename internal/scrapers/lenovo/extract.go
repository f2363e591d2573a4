package lenovo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type object = map[string]any

// truthy mirrors what the vendor's own frontend treats as "present": null,
// false, zero, "" and empty containers are all absent.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}

func firstTruthy(obj object, keys ...string) any {
	for _, k := range keys {
		if v := obj[k]; truthy(v) {
			return v
		}
	}
	return nil
}

func asObject(value any) object {
	obj, _ := value.(map[string]any)
	return obj
}

// scalarString renders scalar JSON values, anything else is absent.
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// firstString returns the first key in `keys` that holds a non-empty scalar.
func firstString(obj object, keys ...string) string {
	for _, k := range keys {
		if s := scalarString(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", value)
}

// resolveWarranty picks the warranty object, in order: currentWarranty, the
// first entry of baseWarranties when it is an array, baseWarranties itself
// when it is an object.
func resolveWarranty(root object) object {
	current := asObject(root["currentWarranty"])
	if len(current) > 0 {
		return current
	}

	switch base := root["baseWarranties"].(type) {
	case []any:
		if len(base) > 0 {
			return asObject(base[0])
		}
	case map[string]any:
		return base
	}
	return nil
}

// Extract flattens a raw ibase info response. Missing sections and fields
// are tolerated, the only error is a data root that is not an object.
func Extract(raw map[string]any) (Record, error) {
	var root object
	rootValue := firstTruthy(raw, "Data", "data")
	if rootValue != nil {
		var ok bool
		root, ok = rootValue.(map[string]any)
		if !ok {
			return Record{}, &MalformedResponseError{
				Reason: fmt.Sprintf("data root is a %s, wanted an object", jsonKind(rootValue)),
			}
		}
	}

	machine := asObject(root["machineInfo"])
	warranty := resolveWarranty(root)

	return Record{
		ProductName:    firstString(machine, "productName"),
		Serial:         firstString(machine, "serial", "serialNumber"),
		MachineType:    firstString(machine, "type", "machineType"),
		Product:        firstString(machine, "product"),
		Model:          firstString(machine, "model"),
		Family:         firstString(machine, "productName"),
		ShipToCountry:  firstString(machine, "shipToCountry"),
		WarrantyStatus: firstString(root, "warrantyStatus"),
		PlanName:       firstString(warranty, "name"),
		DeliveryType:   firstString(warranty, "deliveryTypeName", "deliveryType"),
		StartDate:      firstString(warranty, "startDate"),
		EndDate:        firstString(warranty, "endDate", "EndDate"),
		FullId:         firstString(machine, "fullId"),
		Group:          firstString(machine, "group"),
		Series:         firstString(machine, "series"),
		SubSeries:      firstString(machine, "subSeries"),
		Specification:  firstString(machine, "specification"),
	}, nil
}
